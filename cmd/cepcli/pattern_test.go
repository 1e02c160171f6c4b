// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"testing"
	"time"

	"github.com/sneller-cep/cep/config"
	"github.com/sneller-cep/cep/optimize"
	"github.com/sneller-cep/cep/pattern"
)

const sampleYAML = `
top: seq
window: 5m
optimizer: greedy
statistics: selectivity+rates
args:
  - type: AAPL
    name: a
  - type: AMZN
    name: b
  - type: AVID
    name: c
conditions:
  - left: {name: a, field: open}
    op: ">"
    right: {name: b, field: open}
  - left: {name: b, field: open}
    op: ">"
    right: {name: c, field: open}
`

func TestLoadPattern(t *testing.T) {
	pat, opts, err := loadPattern([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if pat.Top != pattern.Seq {
		t.Fatalf("expected SEQ, got %s", pat.Top)
	}
	if pat.Window != 5*time.Minute {
		t.Fatalf("expected 5m window, got %s", pat.Window)
	}
	if len(pat.Args) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(pat.Args))
	}
	if opts.Optimizer != optimize.Greedy {
		t.Fatalf("expected greedy optimizer, got %s", opts.Optimizer)
	}
	if opts.Statistics != config.SelectivityRates {
		t.Fatalf("expected selectivity+rates statistics, got %v", opts.Statistics)
	}
}

func TestLoadPatternRejectsUnknownOptimizer(t *testing.T) {
	const bad = `
top: seq
args:
  - type: A
    name: a
optimizer: not-a-real-optimizer
`
	if _, _, err := loadPattern([]byte(bad)); err == nil {
		t.Fatal("expected an error for an unknown optimizer")
	}
}

func TestLoadPatternDefaultsToTrivialOptimizerAndNoStatistics(t *testing.T) {
	const minimal = `
top: and
args:
  - type: A
    name: a
`
	_, opts, err := loadPattern([]byte(minimal))
	if err != nil {
		t.Fatal(err)
	}
	if opts.Optimizer != optimize.Trivial {
		t.Fatalf("expected default trivial optimizer, got %s", opts.Optimizer)
	}
	if opts.Statistics != config.NoStatistics {
		t.Fatalf("expected default no statistics, got %v", opts.Statistics)
	}
}
