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

// Package ordered implements generic operations on a slice kept
// sorted under a caller-supplied less function, backed by
// sort.Search rather than a per-element sift: the partial-match store
// needs prefix-trim-by-threshold (window expiry) and insert-in-place,
// not heap extraction, so this trades the teacher's sift-based
// min-heap (heap.FixSlice/PopSlice) for a binary-searched sorted
// slice — the same "generic slice ordering helper" idiom, fitted to
// range queries instead of priority pops.
package ordered

import "sort"

// Insert inserts item into x, which must already be sorted by less,
// and returns the resulting sorted slice. Ties are broken by
// insertion order (new items are placed after existing equal items).
func Insert[T any](x []T, item T, less func(a, b T) bool) []T {
	i := sort.Search(len(x), func(i int) bool {
		return less(item, x[i])
	})
	x = append(x, item)
	copy(x[i+1:], x[i:len(x)-1])
	x[i] = item
	return x
}

// DropPrefix removes every leading element for which stale returns
// true, stopping at the first element for which it returns false —
// x must be ordered so that stale is monotonically non-increasing
// (all stale elements precede all live ones), which holds for
// first-date-ascending expiry. It returns the trimmed slice, reusing
// x's backing array.
func DropPrefix[T any](x []T, stale func(T) bool) []T {
	i := sort.Search(len(x), func(i int) bool {
		return !stale(x[i])
	})
	return x[i:]
}
