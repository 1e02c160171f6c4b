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

// Package pattern defines the declarative CEP pattern: a top-level
// operator over typed event variables, a condition, a sliding window,
// and optional statistics that feed the plan optimizer.
package pattern

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sneller-cep/cep/predicate"
)

// TopOp is the pattern's top-level operator. Disjunction, Kleene-plus
// and negation appear in the wider CEP surface grammar but have no
// evaluator here — see SPEC_FULL.md §1.3/§4.
type TopOp int

const (
	Seq TopOp = iota
	And
)

func (op TopOp) String() string {
	switch op {
	case Seq:
		return "SEQ"
	case And:
		return "AND"
	default:
		return "?"
	}
}

// LeafDescriptor names one event variable bound by the pattern: its
// required event type and the binding name the condition and output
// refer to it by.
type LeafDescriptor struct {
	EventType string
	Name      string
}

// StatisticsKind tags which (if any) of Pattern.Stats's two mutually
// exclusive shapes is populated.
type StatisticsKind int

const (
	NoStatistics StatisticsKind = iota
	FrequencyMapStats
	SelectivityRatesStats
)

// Statistics carries exactly one of a per-type frequency map or a
// selectivity matrix paired with per-leaf arrival rates. Which one is
// populated is recorded in Kind so an optimizer can tell "no
// statistics" from "the wrong kind of statistics" at submission time.
type Statistics struct {
	Kind StatisticsKind

	// FrequencyMap: event_type -> observed count.
	FrequencyMap map[string]int

	// Selectivity[i][j] is the pairwise selectivity between leaf i and
	// leaf j (symmetric; Selectivity[i][i] is the leaf's own unary
	// predicate selectivity). ArrivalRates[i] is leaf i's events per
	// second.
	Selectivity  [][]float64
	ArrivalRates []float64
}

// Pattern is the unit a caller submits to the engine: SEQ(a,b,c) or
// AND(a,b,c) WHERE condition WITHIN window.
type Pattern struct {
	ID        uuid.UUID
	Top       TopOp
	Args      []LeafDescriptor
	Condition predicate.Formula
	// Window is the sliding window; zero means unbounded.
	Window time.Duration
	Stats  *Statistics
}

// New constructs a Pattern, assigning it a fresh identity. Condition
// may be nil, in which case it defaults to the tautology.
func New(top TopOp, args []LeafDescriptor, condition predicate.Formula, window time.Duration) (*Pattern, error) {
	if condition == nil {
		condition = predicate.TrueFormula
	}
	p := &Pattern{
		ID:        uuid.New(),
		Top:       top,
		Args:      args,
		Condition: condition,
		Window:    window,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the structural invariants spec.md requires of a
// pattern before it can be compiled into a blueprint: at least one
// leaf, unique names, and a condition whose free names are all
// declared.
func (p *Pattern) Validate() error {
	if len(p.Args) == 0 {
		return fmt.Errorf("pattern: at least one leaf is required")
	}
	seen := make(map[string]struct{}, len(p.Args))
	for _, a := range p.Args {
		if a.Name == "" {
			return fmt.Errorf("pattern: leaf with empty binding name")
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("pattern: duplicate binding name %q", a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	if p.Condition == nil {
		return fmt.Errorf("pattern: condition must not be nil")
	}
	for n := range p.Condition.FreeNames() {
		if _, ok := seen[n]; !ok {
			return fmt.Errorf("pattern: condition references undeclared name %q", n)
		}
	}
	return nil
}

// NameIndex returns the index into Args of the leaf declared under
// name, or -1 if there is none.
func (p *Pattern) NameIndex(name string) int {
	for i, a := range p.Args {
		if a.Name == name {
			return i
		}
	}
	return -1
}
