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

import "github.com/sneller-cep/cep/blueprint"

// OrderCost estimates the incremental partial-match population of the
// left-deep chain over order, per spec.md's Cost Functions section:
//
//	Σ_k ∏_{m=0..k} (s[o_m][o_m] · λ[o_m] · w · ∏_{j<m} s[o_m][o_j])
func OrderCost(order []int, sel [][]float64, rates []float64, windowSeconds float64) float64 {
	var total float64
	for k := range order {
		prod := 1.0
		for m := 0; m <= k; m++ {
			om := order[m]
			inner := sel[om][om] * rates[om] * windowSeconds
			for j := 0; j < m; j++ {
				inner *= sel[om][order[j]]
			}
			prod *= inner
		}
		total += prod
	}
	return total
}

// TreeCost estimates the partial-match population of the tree shape
// bp, per spec.md's recursive tree-cost definition:
//
//	PM(leaf i) = w · λ[i] · s[i][i]
//	PM(L,R) = PM(L) · PM(R) · ∏_{l∈L,r∈R} s[l][r]
//	cost(leaf) = PM(leaf); cost(L,R) = cost(L) + cost(R) + PM(L,R)
func TreeCost(bp *blueprint.Blueprint, sel [][]float64, rates []float64, windowSeconds float64) float64 {
	cost, _, _ := treeCost(bp, sel, rates, windowSeconds)
	return cost
}

func treeCost(bp *blueprint.Blueprint, sel [][]float64, rates []float64, w float64) (cost, pm float64, leaves []int) {
	if bp.IsLeaf {
		i := bp.Index
		pm = w * rates[i] * sel[i][i]
		return pm, pm, []int{i}
	}
	lCost, lPM, lLeaves := treeCost(bp.Left, sel, rates, w)
	rCost, rPM, rLeaves := treeCost(bp.Right, sel, rates, w)
	prodSel := 1.0
	for _, l := range lLeaves {
		for _, r := range rLeaves {
			prodSel *= sel[l][r]
		}
	}
	pm = lPM * rPM * prodSel
	cost = lCost + rCost + pm
	leaves = make([]int, 0, len(lLeaves)+len(rLeaves))
	leaves = append(leaves, lLeaves...)
	leaves = append(leaves, rLeaves...)
	return cost, pm, leaves
}
