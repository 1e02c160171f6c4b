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

// greedyOrder builds a left-deep order by repeatedly appending the
// not-yet-chosen index i minimizing
//
//	s[i][i] * rates[i] * prod_{j in chosen} s[i][j]
//
// Ties are broken by the first index examined, i.e. ascending index
// order among equal scores.
func greedyOrder(sel [][]float64, rates []float64) []int {
	n := len(rates)
	chosen := make([]int, 0, n)
	remaining := make([]bool, n)
	for i := range remaining {
		remaining[i] = true
	}
	for len(chosen) < n {
		best := -1
		var bestScore float64
		for i := 0; i < n; i++ {
			if !remaining[i] {
				continue
			}
			score := sel[i][i] * rates[i]
			for _, j := range chosen {
				score *= sel[i][j]
			}
			if best == -1 || score < bestScore {
				best = i
				bestScore = score
			}
		}
		chosen = append(chosen, best)
		remaining[best] = false
	}
	return chosen
}
