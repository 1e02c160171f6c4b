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
	"fmt"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/sneller-cep/cep/config"
	"github.com/sneller-cep/cep/optimize"
	"github.com/sneller-cep/cep/pattern"
	"github.com/sneller-cep/cep/predicate"
)

// operandDoc is one side of a comparison: either a named binding's
// field (Name/Field) or a constant (Const).
type operandDoc struct {
	Name  string   `json:"name,omitempty"`
	Field string   `json:"field,omitempty"`
	Const *float64 `json:"const,omitempty"`
}

func (o operandDoc) term() predicate.Term {
	if o.Const != nil {
		return predicate.Atomic{Value: *o.Const}
	}
	return predicate.Field{Name: o.Name, Field: o.Field}
}

type conditionDoc struct {
	Left  operandDoc `json:"left"`
	Op    string     `json:"op"`
	Right operandDoc `json:"right"`
}

func (c conditionDoc) comparison() (predicate.Comparison, error) {
	op, ok := compareOps[c.Op]
	if !ok {
		return predicate.Comparison{}, fmt.Errorf("cepcli: unknown comparison operator %q", c.Op)
	}
	return predicate.Comparison{Op: op, Left: c.Left.term(), Right: c.Right.term()}, nil
}

var compareOps = map[string]predicate.CompareOp{
	"=": predicate.Eq, "!=": predicate.Neq,
	"<": predicate.Lt, "<=": predicate.Le,
	">": predicate.Gt, ">=": predicate.Ge,
}

type argDoc struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// patternDoc is the YAML schema a pattern file decodes into: the
// declarative pattern plus the submission options of spec.md §6,
// authored together the way an operator would hand both to the CLI
// in one file.
type patternDoc struct {
	Top            string         `json:"top"`
	Window         string         `json:"window,omitempty"`
	Optimizer      string         `json:"optimizer,omitempty"`
	Statistics     string         `json:"statistics,omitempty"`
	MeasureElapsed bool           `json:"measure_elapsed,omitempty"`
	Args           []argDoc       `json:"args"`
	Conditions     []conditionDoc `json:"conditions,omitempty"`
}

var topOps = map[string]pattern.TopOp{"seq": pattern.Seq, "and": pattern.And}

var optimizers = map[string]optimize.Algorithm{
	"trivial":             optimize.Trivial,
	"ascending-frequency": optimize.AscendingFrequency,
	"greedy":              optimize.Greedy,
	"dp-left-deep":        optimize.DPLeftDeep,
	"ii-swap":             optimize.IISwap,
	"ii-circle":           optimize.IICircle,
	"dp-bushy":            optimize.DPBushy,
	"zstream":             optimize.ZStream,
	"zstream-ord":         optimize.ZStreamOrd,
}

var statsKinds = map[string]config.StatisticsKind{
	"":                  config.NoStatistics,
	"none":              config.NoStatistics,
	"frequency-map":     config.FrequencyMap,
	"selectivity+rates": config.SelectivityRates,
}

// loadPattern decodes a YAML pattern document into a *pattern.Pattern
// and its submission config.Options, per spec.md §6's "Configuration
// options" and the YAML-authored declarative style of
// SPEC_FULL.md §3.4.
func loadPattern(data []byte) (*pattern.Pattern, config.Options, error) {
	var doc patternDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, config.Options{}, fmt.Errorf("cepcli: decoding pattern yaml: %w", err)
	}

	top, ok := topOps[doc.Top]
	if !ok {
		return nil, config.Options{}, fmt.Errorf("cepcli: unknown top operator %q", doc.Top)
	}
	args := make([]pattern.LeafDescriptor, len(doc.Args))
	for i, a := range doc.Args {
		args[i] = pattern.LeafDescriptor{EventType: a.Type, Name: a.Name}
	}
	conjuncts := make([]predicate.Formula, 0, len(doc.Conditions))
	for _, c := range doc.Conditions {
		cmp, err := c.comparison()
		if err != nil {
			return nil, config.Options{}, err
		}
		conjuncts = append(conjuncts, cmp)
	}

	var window time.Duration
	if doc.Window != "" {
		var err error
		window, err = time.ParseDuration(doc.Window)
		if err != nil {
			return nil, config.Options{}, fmt.Errorf("cepcli: parsing window %q: %w", doc.Window, err)
		}
	}

	pat, err := pattern.New(top, args, predicate.MakeAnd(conjuncts...), window)
	if err != nil {
		return nil, config.Options{}, fmt.Errorf("cepcli: building pattern: %w", err)
	}

	alg, ok := optimizers[doc.Optimizer]
	if doc.Optimizer != "" && !ok {
		return nil, config.Options{}, fmt.Errorf("cepcli: unknown optimizer %q", doc.Optimizer)
	}
	stats, ok := statsKinds[doc.Statistics]
	if !ok {
		return nil, config.Options{}, fmt.Errorf("cepcli: unknown statistics kind %q", doc.Statistics)
	}
	opts := config.Options{Optimizer: alg, Statistics: stats, MeasureElapsed: doc.MeasureElapsed}
	return pat, opts, nil
}
