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

package ordered

import (
	"reflect"
	"testing"
)

func less(a, b int) bool { return a < b }

func TestInsertMaintainsOrder(t *testing.T) {
	var x []int
	for _, v := range []int{5, 1, 4, 2, 3} {
		x = Insert(x, v, less)
	}
	want := []int{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(x, want) {
		t.Fatalf("got %v want %v", x, want)
	}
}

func TestInsertStableOnTies(t *testing.T) {
	type item struct {
		key, seq int
	}
	var x []item
	x = Insert(x, item{1, 0}, func(a, b item) bool { return a.key < b.key })
	x = Insert(x, item{1, 1}, func(a, b item) bool { return a.key < b.key })
	x = Insert(x, item{1, 2}, func(a, b item) bool { return a.key < b.key })
	for i, it := range x {
		if it.seq != i {
			t.Fatalf("expected insertion order preserved among ties, got %v", x)
		}
	}
}

func TestDropPrefix(t *testing.T) {
	x := []int{1, 2, 3, 10, 11}
	got := DropPrefix(x, func(v int) bool { return v < 10 })
	want := []int{10, 11}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDropPrefixNoneStale(t *testing.T) {
	x := []int{5, 6, 7}
	got := DropPrefix(x, func(v int) bool { return v < 0 })
	if !reflect.DeepEqual(got, x) {
		t.Fatalf("expected unchanged slice, got %v", got)
	}
}

func TestDropPrefixAllStale(t *testing.T) {
	x := []int{1, 2, 3}
	got := DropPrefix(x, func(v int) bool { return true })
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}
