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

// Package config holds the per-pattern submission options of
// SPEC_FULL.md §2.3: which optimizer to plan with, what kind of
// statistics (if any) the engine should collect on the caller's
// behalf, the sliding window, and whether to measure elapsed runtime.
package config

import (
	"time"

	"github.com/sneller-cep/cep/optimize"
)

// StatisticsKind selects whether, and how, cepcore.Facade should
// derive pattern.Statistics from a sample stream when a submitted
// pattern does not already carry its own.
type StatisticsKind int

const (
	// NoStatistics leaves pat.Stats untouched; optimizers that
	// require statistics will fail the submission.
	NoStatistics StatisticsKind = iota
	// FrequencyMap derives only a per-type frequency map, enough for
	// optimize.AscendingFrequency.
	FrequencyMap
	// SelectivityRates derives the full selectivity matrix and
	// arrival-rate vector, enough for every optimizer in the family.
	SelectivityRates
)

func (k StatisticsKind) String() string {
	switch k {
	case NoStatistics:
		return "none"
	case FrequencyMap:
		return "frequency-map"
	case SelectivityRates:
		return "selectivity+rates"
	default:
		return "unknown"
	}
}

// Options is the configuration a caller attaches to one pattern
// submission (spec.md §6, "Configuration options").
type Options struct {
	Optimizer      optimize.Algorithm
	Statistics     StatisticsKind
	Window         time.Duration
	MeasureElapsed bool
}

// Default returns the conservative baseline: the trivial optimizer,
// no derived statistics, the pattern's own window, elapsed time not
// measured.
func Default() Options {
	return Options{Optimizer: optimize.Trivial, Statistics: NoStatistics}
}
