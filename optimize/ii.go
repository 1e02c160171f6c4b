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

// iiSwapOrder seeds from the greedy order and repeatedly applies the
// first (i,j) position swap, in (i,j) lexicographic scan order, that
// strictly decreases order_cost; a full pass with no improving swap
// ends the search.
func iiSwapOrder(sel [][]float64, rates []float64, windowSeconds float64) []int {
	order := greedyOrder(sel, rates)
	n := len(order)
	for {
		improved := false
		cur := OrderCost(order, sel, rates, windowSeconds)
		for i := 0; i < n && !improved; i++ {
			for j := i + 1; j < n; j++ {
				order[i], order[j] = order[j], order[i]
				cand := OrderCost(order, sel, rates, windowSeconds)
				if cand < cur {
					improved = true
					break
				}
				order[i], order[j] = order[j], order[i]
			}
		}
		if !improved {
			return order
		}
	}
}

// iiCircleOrder seeds from the greedy order and repeatedly applies the
// first ordered 3-index circle — rotating positions (i,j,k) one step
// in either orientation — that strictly decreases order_cost,
// scanning (i,j,k) lexicographically and forward orientation before
// backward at each triple. A full pass with no improving move ends the
// search.
func iiCircleOrder(sel [][]float64, rates []float64, windowSeconds float64) []int {
	order := greedyOrder(sel, rates)
	n := len(order)
	rotateForward := func(i, j, k int) {
		order[i], order[j], order[k] = order[k], order[i], order[j]
	}
	rotateBackward := func(i, j, k int) {
		order[i], order[j], order[k] = order[j], order[k], order[i]
	}
	for {
		improved := false
		cur := OrderCost(order, sel, rates, windowSeconds)
		for i := 0; i < n && !improved; i++ {
			for j := i + 1; j < n && !improved; j++ {
				for k := j + 1; k < n && !improved; k++ {
					rotateForward(i, j, k)
					if OrderCost(order, sel, rates, windowSeconds) < cur {
						improved = true
						break
					}
					rotateBackward(i, j, k) // undo forward
					rotateBackward(i, j, k) // try backward orientation
					if OrderCost(order, sel, rates, windowSeconds) < cur {
						improved = true
						break
					}
					rotateForward(i, j, k) // undo backward, restore original
				}
			}
		}
		if !improved {
			return order
		}
	}
}
