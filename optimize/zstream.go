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

// zstreamBlueprint computes, for the fixed sequence order, the best
// bracketing of the contiguous sub-ranges [l,r) via interval DP —
// O(n^3) in splits. ZStream uses the trivial order; ZStream-ord seeds
// with the greedy order; both call this with their respective order.
func zstreamBlueprint(order []int, sel [][]float64, rates []float64, windowSeconds float64) *blueprint.Blueprint {
	n := len(order)
	mask := make([]int, n)
	for i, idx := range order {
		mask[i] = 1 << idx
	}
	// rangeMask[l][r] is the union of leaf-index bits for order[l:r].
	rangeMask := make([][]int, n+1)
	for l := range rangeMask {
		rangeMask[l] = make([]int, n+1)
	}
	for l := 0; l < n; l++ {
		m := 0
		for r := l + 1; r <= n; r++ {
			m |= mask[r-1]
			rangeMask[l][r] = m
		}
	}

	cost := make([][]float64, n+1)
	tree := make([][]*blueprint.Blueprint, n+1)
	for l := range cost {
		cost[l] = make([]float64, n+1)
		tree[l] = make([]*blueprint.Blueprint, n+1)
	}
	for l := 0; l < n; l++ {
		cost[l][l+1] = subsetPM(rangeMask[l][l+1], sel, rates, windowSeconds)
		tree[l][l+1] = blueprint.Leaf(order[l])
	}
	for length := 2; length <= n; length++ {
		for l := 0; l+length <= n; l++ {
			r := l + length
			cost[l][r] = math.Inf(1)
			pm := subsetPM(rangeMask[l][r], sel, rates, windowSeconds)
			for m := l + 1; m < r; m++ {
				cand := cost[l][m] + cost[m][r] + pm
				if cand < cost[l][r] {
					cost[l][r] = cand
					tree[l][r] = blueprint.Pair(tree[l][m], tree[m][r])
				}
			}
		}
	}
	return tree[0][n]
}
