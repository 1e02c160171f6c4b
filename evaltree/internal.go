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

package evaltree

import (
	"github.com/sneller-cep/cep/cepevent"
	"github.com/sneller-cep/cep/predicate"
)

// handleSignal implements the internal-node merge protocol of
// spec.md §4.4: the child on side has produced a new partial match;
// try to combine it with every live match on the other side, install
// survivors, and propagate upward.
func (n *Node) handleSignal(side Side) error {
	child, other := n.Left, n.Right
	if side == SideRight {
		child, other = n.Right, n.Left
	}
	m := child.popUnhandled()
	if m == nil {
		return nil
	}

	other.partials.expireBefore(m.LastDate, other.Window)
	n.partials.expireBefore(m.LastDate, n.Window)

	for _, p := range other.partials.all() {
		if n.Window > 0 {
			if p.LastDate.Sub(m.FirstDate) > n.Window {
				continue
			}
			if m.LastDate.Sub(p.FirstDate) > n.Window {
				continue
			}
		}

		candidate := mergeEvents(n.Reorder, child.Reorder, m, other.Reorder, p)

		if n.IsSeq && !nonDecreasing(candidate) {
			continue
		}

		if !n.Condition.Eval(bindingFor(n.Reorder, candidate)) {
			continue
		}

		pm := newPartialMatch(candidate)
		n.partials.insert(pm)
		n.unhandled = append(n.unhandled, pm)
		if n.Parent != nil {
			if err := n.Parent.handleSignal(n.sideInParent); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeEvents performs the positional merge of spec.md §4.4.b and §9
// "Merge semantics": the result is ordered by nodeReorder (original
// declaration order), pulling each event from whichever side's
// reorder declares that original index.
func mergeEvents(nodeReorder, childReorder []ReorderEntry, m *PartialMatch, otherReorder []ReorderEntry, p *PartialMatch) []cepevent.Event {
	byIndex := make(map[int]cepevent.Event, len(nodeReorder))
	for i, re := range childReorder {
		byIndex[re.OriginalIndex] = m.Events[i]
	}
	for i, re := range otherReorder {
		byIndex[re.OriginalIndex] = p.Events[i]
	}
	out := make([]cepevent.Event, len(nodeReorder))
	for i, re := range nodeReorder {
		out[i] = byIndex[re.OriginalIndex]
	}
	return out
}

// nonDecreasing reports whether events is sorted by (Timestamp,
// Counter) — the sequence guard for SEQ patterns.
func nonDecreasing(events []cepevent.Event) bool {
	for i := 1; i < len(events); i++ {
		if events[i].Less(events[i-1]) {
			return false
		}
	}
	return true
}

// bindingFor builds the name -> payload environment a node's
// condition is evaluated against, from its reorder and an aligned
// event list.
func bindingFor(reorder []ReorderEntry, events []cepevent.Event) predicate.Binding {
	b := make(predicate.Binding, len(reorder))
	for i, re := range reorder {
		b[re.Desc.Name] = events[i].Payload
	}
	return b
}
