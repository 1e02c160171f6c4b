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

package predicate

import (
	"fmt"
	"strings"
)

// CompareOp is the comparison operator of a Comparison formula.
type CompareOp int

const (
	Eq CompareOp = iota
	Neq
	Lt
	Le
	Gt
	Ge
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Formula is a closed tagged union over Boolean conditions: Comparison,
// And, True. It is evaluated against a Binding and can be projected onto
// a subset of names.
type Formula interface {
	formula()
	// Eval evaluates the formula on a complete binding. It is total
	// when every name the formula references is present in b.
	Eval(b Binding) bool
	// FreeNames returns the set of binding names the formula reads.
	FreeNames() map[string]struct{}
	// Project returns the strongest sub-formula of f whose free names
	// are a subset of names.
	Project(names map[string]struct{}) Formula
	String() string
}

// trueFormula is the tautology; it is the identity element for
// Project and the result of projecting anything whose free names are
// not fully covered.
type trueFormula struct{}

// TrueFormula is the tautology formula, satisfied by every binding.
var TrueFormula Formula = trueFormula{}

func (trueFormula) formula()                           {}
func (trueFormula) Eval(Binding) bool                  { return true }
func (trueFormula) FreeNames() map[string]struct{}     { return map[string]struct{}{} }
func (trueFormula) Project(map[string]struct{}) Formula { return TrueFormula }
func (trueFormula) String() string                     { return "true" }

// Comparison is a binary comparison between two Terms.
type Comparison struct {
	Op          CompareOp
	Left, Right Term
}

func (Comparison) formula() {}

func (c Comparison) Eval(b Binding) bool {
	l, ok := c.Left.Eval(b)
	if !ok {
		return false
	}
	r, ok := c.Right.Eval(b)
	if !ok {
		return false
	}
	switch c.Op {
	case Eq:
		return l == r
	case Neq:
		return l != r
	case Lt:
		return l < r
	case Le:
		return l <= r
	case Gt:
		return l > r
	case Ge:
		return l >= r
	default:
		return false
	}
}

func (c Comparison) FreeNames() map[string]struct{} {
	set := make(map[string]struct{})
	c.Left.collectNames(set)
	c.Right.collectNames(set)
	return set
}

// Project returns c unchanged if every free name of c lies in names,
// otherwise the tautology — an atomic comparison cannot be partially
// evaluated.
func (c Comparison) Project(names map[string]struct{}) Formula {
	for n := range c.FreeNames() {
		if _, ok := names[n]; !ok {
			return TrueFormula
		}
	}
	return c
}

func (c Comparison) String() string {
	return fmt.Sprintf("(%v %s %v)", c.Left, c.Op, c.Right)
}

// And is an n-ary conjunction of conjuncts.
type And struct {
	Conjuncts []Formula
}

func (And) formula() {}

func (a And) Eval(b Binding) bool {
	for _, c := range a.Conjuncts {
		if !c.Eval(b) {
			return false
		}
	}
	return true
}

func (a And) FreeNames() map[string]struct{} {
	set := make(map[string]struct{})
	for _, c := range a.Conjuncts {
		for n := range c.FreeNames() {
			set[n] = struct{}{}
		}
	}
	return set
}

// Project returns the conjunction of every conjunct whose own free
// names lie entirely within names, per spec: "the conjunction of each
// conjunct's projection that is fully covered by names." A conjunct
// that is itself an And is flattened and projected recursively so
// nested conjunctions push down just as far as flat ones.
func (a And) Project(names map[string]struct{}) Formula {
	var kept []Formula
	for _, c := range a.Conjuncts {
		p := c.Project(names)
		if _, ok := p.(trueFormula); ok {
			continue
		}
		if nested, ok := p.(And); ok {
			kept = append(kept, nested.Conjuncts...)
			continue
		}
		kept = append(kept, p)
	}
	switch len(kept) {
	case 0:
		return TrueFormula
	case 1:
		return kept[0]
	default:
		return And{Conjuncts: kept}
	}
}

func (a And) String() string {
	parts := make([]string, len(a.Conjuncts))
	for i, c := range a.Conjuncts {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

// MakeAnd builds a Formula from a list of conjuncts, collapsing the
// trivial cases (0 conjuncts -> True, 1 conjunct -> itself).
func MakeAnd(conjuncts ...Formula) Formula {
	switch len(conjuncts) {
	case 0:
		return TrueFormula
	case 1:
		return conjuncts[0]
	default:
		return And{Conjuncts: conjuncts}
	}
}
