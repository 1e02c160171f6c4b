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
	"sort"

	"github.com/sneller-cep/cep/pattern"
)

// trivialOrder returns identity order 0,1,...,n-1.
func trivialOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// ascendingFrequencyOrder sorts leaf indices by ascending observed
// count (frequency map) or arrival rate (selectivity statistics),
// whichever the pattern carries. Ties keep original relative order.
func ascendingFrequencyOrder(pat *pattern.Pattern) []int {
	n := len(pat.Args)
	order := trivialOrder(n)
	count := make([]float64, n)
	switch pat.Stats.Kind {
	case pattern.FrequencyMapStats:
		for i, a := range pat.Args {
			count[i] = float64(pat.Stats.FrequencyMap[a.EventType])
		}
	case pattern.SelectivityRatesStats:
		copy(count, pat.Stats.ArrivalRates)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return count[order[a]] < count[order[b]]
	})
	return order
}
