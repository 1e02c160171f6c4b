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

package optimize

import (
	"math"

	"github.com/sneller-cep/cep/blueprint"
)

// dpBushyBlueprint computes best[S] = the minimum tree_cost shape
// covering index set S, for every non-trivial S, by iterating disjoint
// bipartitions (A,B) of S. To avoid enumerating both (A,B) and (B,A),
// partitions are generated by fixing S's lowest set bit in A and
// letting every other subset of S's remaining bits range over the
// complement to form A's rest; B is always S minus A.
func dpBushyBlueprint(sel [][]float64, rates []float64, windowSeconds float64) *blueprint.Blueprint {
	n := len(rates)
	full := 1 << n
	pm := make([]float64, full)
	for s := 1; s < full; s++ {
		pm[s] = subsetPM(s, sel, rates, windowSeconds)
	}
	bestCost := make([]float64, full)
	bestTree := make([]*blueprint.Blueprint, full)
	for i := 0; i < n; i++ {
		bit := 1 << i
		bestCost[bit] = pm[bit]
		bestTree[bit] = blueprint.Leaf(i)
	}
	for s := 1; s < full; s++ {
		if bestTree[s] != nil {
			continue // singleton already seeded above
		}
		witness := lowestBit(s)
		rest := s &^ witness
		bestCost[s] = math.Inf(1)
		for sub := rest; ; sub = (sub - 1) & rest {
			a := witness | sub
			b := s &^ a
			if b != 0 {
				// PM of a tree over the union of two disjoint sets is
				// a pure function of the union (by the same symmetric-
				// selectivity argument as OrderCost's prefix PM), so
				// pm[s] already accounts for PM(a), PM(b) and their
				// cross-selectivity in one closed form.
				cand := bestCost[a] + bestCost[b] + pm[s]
				if cand < bestCost[s] {
					bestCost[s] = cand
					bestTree[s] = blueprint.Pair(bestTree[a], bestTree[b])
				}
			}
			if sub == 0 {
				break
			}
		}
	}
	return bestTree[full-1]
}

func popcount(x int) int {
	c := 0
	for x != 0 {
		x &= x - 1
		c++
	}
	return c
}

func lowestBit(x int) int {
	return x & (-x)
}
