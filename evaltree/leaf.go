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

// HandleEvent ingests e at a leaf node: type check, expiry, the
// unary leaf predicate, and insertion of a new single-event partial
// match — spec.md §4.3. It must only be called on a leaf (LeafIndex
// >= 0).
func (n *Node) HandleEvent(e cepevent.Event) error {
	if e.Type != n.leafDesc.EventType {
		return &WrongEventTypeError{Expected: n.leafDesc.EventType, Got: e.Type}
	}
	n.partials.expireBefore(e.Timestamp, n.Window)

	binding := predicate.Binding{n.leafDesc.Name: e.Payload}
	if !n.Condition.Eval(binding) {
		return nil
	}

	m := newPartialMatch([]cepevent.Event{e})
	n.partials.insert(m)
	n.unhandled = append(n.unhandled, m)
	if n.Parent != nil {
		return n.Parent.handleSignal(n.sideInParent)
	}
	return nil
}

// popUnhandled removes and returns the oldest partial match produced
// locally but not yet propagated to the parent.
func (n *Node) popUnhandled() *PartialMatch {
	if len(n.unhandled) == 0 {
		return nil
	}
	m := n.unhandled[0]
	n.unhandled = n.unhandled[1:]
	return m
}
