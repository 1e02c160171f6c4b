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

// Package evaltree realizes a blueprint into a live evaluation tree:
// leaves that buffer typed events, internal nodes that maintain and
// propagate partial matches, and a driver that dispatches a stream of
// events into the tree and drains complete matches from the root.
package evaltree

import (
	"fmt"
	"time"

	"github.com/sneller-cep/cep/blueprint"
	"github.com/sneller-cep/cep/pattern"
	"github.com/sneller-cep/cep/predicate"
)

// Side identifies which child of its parent a Node is.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// ReorderEntry is one (original declaration index, leaf descriptor)
// pair in a node's canonical, index-sorted name order.
type ReorderEntry struct {
	OriginalIndex int
	Desc          pattern.LeafDescriptor
}

// Node is one node of a realized evaluation tree. Leaves have
// LeafIndex >= 0 and no children; internal nodes have both children
// and LeafIndex == -1.
type Node struct {
	Reorder   []ReorderEntry
	Window    time.Duration
	Condition predicate.Formula
	IsSeq     bool

	Parent       *Node
	Left, Right  *Node
	sideInParent Side

	LeafIndex int // -1 for internal nodes
	leafDesc  pattern.LeafDescriptor

	partials  partialStore
	unhandled []*PartialMatch
}

// Tree is a realized evaluation tree together with the index from
// event type to the leaves subscribed to it, for driver dispatch.
type Tree struct {
	Root    *Node
	Leaves  []*Node // indexed by original leaf index
	ByType  map[string][]*Node
	Pattern *pattern.Pattern
}

// Build realizes bp into an evaluation tree over pat. It refuses to
// start (returns *MalformedPlanError) if bp does not cover pat.Args's
// indices exactly once.
func Build(pat *pattern.Pattern, bp *blueprint.Blueprint) (*Tree, error) {
	if err := blueprint.Validate(bp, len(pat.Args)); err != nil {
		return nil, &MalformedPlanError{Reason: err.Error()}
	}
	leaves := make([]*Node, len(pat.Args))
	root := build(pat, bp, leaves)
	if err := checkReorderInvariant(root, len(pat.Args)); err != nil {
		return nil, err
	}
	byType := make(map[string][]*Node)
	for _, l := range leaves {
		byType[l.leafDesc.EventType] = append(byType[l.leafDesc.EventType], l)
	}
	return &Tree{Root: root, Leaves: leaves, ByType: byType, Pattern: pat}, nil
}

func build(pat *pattern.Pattern, bp *blueprint.Blueprint, leaves []*Node) *Node {
	if bp.IsLeaf {
		desc := pat.Args[bp.Index]
		n := &Node{
			Reorder:   []ReorderEntry{{OriginalIndex: bp.Index, Desc: desc}},
			Window:    pat.Window,
			IsSeq:     pat.Top == pattern.Seq,
			LeafIndex: bp.Index,
			leafDesc:  desc,
		}
		n.Condition = pat.Condition.Project(namesOf(n.Reorder))
		leaves[bp.Index] = n
		return n
	}
	left := build(pat, bp.Left, leaves)
	right := build(pat, bp.Right, leaves)
	n := &Node{
		Reorder:   mergeReorder(left.Reorder, right.Reorder),
		Window:    pat.Window,
		IsSeq:     pat.Top == pattern.Seq,
		LeafIndex: -1,
		Left:      left,
		Right:     right,
	}
	n.Condition = pat.Condition.Project(namesOf(n.Reorder))
	left.Parent, left.sideInParent = n, SideLeft
	right.Parent, right.sideInParent = n, SideRight
	return n
}

// mergeReorder returns the index-sorted merge of two already
// index-sorted, disjoint reorder lists.
func mergeReorder(left, right []ReorderEntry) []ReorderEntry {
	out := make([]ReorderEntry, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i].OriginalIndex < right[j].OriginalIndex {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	out = append(out, right[j:]...)
	return out
}

func namesOf(reorder []ReorderEntry) map[string]struct{} {
	set := make(map[string]struct{}, len(reorder))
	for _, re := range reorder {
		set[re.Desc.Name] = struct{}{}
	}
	return set
}

// checkReorderInvariant verifies, bottom-up, that every node's
// Reorder is the index-sorted merge of its children's and that the
// root covers [0,n) — the invariant spec.md §3 requires of a built
// tree.
func checkReorderInvariant(n *Node, total int) error {
	if n.LeafIndex >= 0 {
		if len(n.Reorder) != 1 || n.Reorder[0].OriginalIndex != n.LeafIndex {
			return &MalformedPlanError{Reason: "leaf reorder does not match its own index"}
		}
		return nil
	}
	if err := checkReorderInvariant(n.Left, total); err != nil {
		return err
	}
	if err := checkReorderInvariant(n.Right, total); err != nil {
		return err
	}
	want := mergeReorder(n.Left.Reorder, n.Right.Reorder)
	if len(want) != len(n.Reorder) {
		return &MalformedPlanError{Reason: "reorder length mismatch with children"}
	}
	for i := range want {
		if want[i] != n.Reorder[i] {
			return &MalformedPlanError{Reason: fmt.Sprintf("reorder entry %d diverges from children's merge", i)}
		}
	}
	if n.Parent == nil && len(n.Reorder) != total {
		return &MalformedPlanError{Reason: "root reorder does not cover every leaf index"}
	}
	return nil
}
