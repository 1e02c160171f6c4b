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

// Package optimize implements the plan optimizer family of spec.md
// §4.7: each algorithm turns a pattern plus its statistics into a
// blueprint.Blueprint. All optimizers are required to agree on the
// output multiset for a given pattern and stream (spec.md property
// 5, "plan independence") — they differ only in the shape, and
// therefore the runtime cost, of the resulting tree.
package optimize

import "fmt"

// Algorithm selects which optimizer Plan runs.
type Algorithm int

const (
	Trivial Algorithm = iota
	AscendingFrequency
	Greedy
	DPLeftDeep
	IISwap
	IICircle
	DPBushy
	ZStream
	ZStreamOrd
)

func (a Algorithm) String() string {
	switch a {
	case Trivial:
		return "trivial"
	case AscendingFrequency:
		return "ascending-frequency"
	case Greedy:
		return "greedy"
	case DPLeftDeep:
		return "dp-left-deep"
	case IISwap:
		return "ii-swap"
	case IICircle:
		return "ii-circle"
	case DPBushy:
		return "dp-bushy"
	case ZStream:
		return "zstream"
	case ZStreamOrd:
		return "zstream-ord"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// requiresSelectivity reports whether a needs a full selectivity
// matrix and arrival-rate vector (as opposed to only a frequency
// map, or no statistics at all).
func (a Algorithm) requiresSelectivity() bool {
	switch a {
	case Greedy, DPLeftDeep, IISwap, IICircle, DPBushy, ZStream, ZStreamOrd:
		return true
	default:
		return false
	}
}

// requiresFrequency reports whether a needs at least a frequency map
// or arrival rates (ascending-frequency accepts either).
func (a Algorithm) requiresFrequency() bool {
	return a == AscendingFrequency
}
