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

// Package blueprint is the abstract binary-tree shape an optimizer
// produces over a pattern's leaf indices, before any tree node exists.
package blueprint

import "fmt"

// Blueprint is either a leaf (an index into the pattern's Args) or a
// pair of child blueprints. The zero value is not a valid Blueprint;
// use Leaf or Pair.
type Blueprint struct {
	// IsLeaf distinguishes the two shapes. When true, Index is valid
	// and Left/Right are nil; when false, Left and Right are valid.
	IsLeaf      bool
	Index       int
	Left, Right *Blueprint
}

// Leaf returns a blueprint for the single leaf index i.
func Leaf(i int) *Blueprint {
	return &Blueprint{IsLeaf: true, Index: i}
}

// Pair returns a blueprint combining left and right under one
// internal node.
func Pair(left, right *Blueprint) *Blueprint {
	return &Blueprint{Left: left, Right: right}
}

// LeftDeep builds the left-deep chain ((((order[0],order[1]),order[2]),...)
// over order, in the given order. It panics if order is empty.
func LeftDeep(order []int) *Blueprint {
	if len(order) == 0 {
		panic("blueprint: LeftDeep requires at least one leaf")
	}
	bp := Leaf(order[0])
	for _, idx := range order[1:] {
		bp = Pair(bp, Leaf(idx))
	}
	return bp
}

// Leaves appends, in left-to-right (in-order) traversal order, every
// leaf index reachable from bp.
func (bp *Blueprint) Leaves() []int {
	if bp == nil {
		return nil
	}
	if bp.IsLeaf {
		return []int{bp.Index}
	}
	return append(bp.Left.Leaves(), bp.Right.Leaves()...)
}

func (bp *Blueprint) String() string {
	if bp == nil {
		return "<nil>"
	}
	if bp.IsLeaf {
		return fmt.Sprintf("%d", bp.Index)
	}
	return fmt.Sprintf("(%v,%v)", bp.Left, bp.Right)
}

// Validate checks that bp is a well-formed blueprint over exactly the
// index set [0,n): every index in range appears, none is missing, and
// none is duplicated. A malformed blueprint is a programmer error per
// spec.md §7 and evaluation must refuse to start on it.
func Validate(bp *Blueprint, n int) error {
	if bp == nil {
		return fmt.Errorf("blueprint: nil blueprint")
	}
	seen := make(map[int]bool, n)
	var walk func(*Blueprint) error
	walk = func(b *Blueprint) error {
		if b == nil {
			return fmt.Errorf("blueprint: nil subtree")
		}
		if b.IsLeaf {
			if b.Index < 0 || b.Index >= n {
				return fmt.Errorf("blueprint: leaf index %d out of range [0,%d)", b.Index, n)
			}
			if seen[b.Index] {
				return fmt.Errorf("blueprint: leaf index %d appears more than once", b.Index)
			}
			seen[b.Index] = true
			return nil
		}
		if b.Left == nil || b.Right == nil {
			return fmt.Errorf("blueprint: internal node missing a child")
		}
		if err := walk(b.Left); err != nil {
			return err
		}
		return walk(b.Right)
	}
	if err := walk(bp); err != nil {
		return err
	}
	if len(seen) != n {
		return fmt.Errorf("blueprint: covers %d of %d leaf indices", len(seen), n)
	}
	return nil
}
