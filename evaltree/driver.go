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

// Driver consumes a single pattern's event stream and drives its
// tree: dispatch each event to every subscribed leaf, then drain the
// root's complete matches into the sink — spec.md §4.5/§4.6. A Driver
// is the "simple worker" spec.md treats as an external collaborator;
// it is single-threaded and makes no concurrency decisions of its
// own (see cepcore for the one-goroutine-per-pattern scheduler that
// runs it).
type Driver struct {
	Tree *Tree
	Sink *MatchSink
}

// NewDriver pairs tree with a freshly allocated sink of the given
// capacity (<=0 for unbounded).
func NewDriver(tree *Tree, sinkCapacity int) *Driver {
	return &Driver{Tree: tree, Sink: NewMatchSink(sinkCapacity)}
}

// Run drains stream until it closes, dispatching every event whose
// type the tree subscribes to and draining the root after each one.
// It closes Sink before returning. The only errors it can return are
// *WrongEventTypeError (a dispatcher bug) and *predicate.EvalError
// (the pattern's condition failed to evaluate on what should have
// been a complete binding) — both fatal per spec.md §7.
func (d *Driver) Run(stream *cepevent.Stream) error {
	defer d.Sink.Close()
	for {
		e, ok := stream.Pop()
		if !ok {
			return nil
		}
		for _, leaf := range d.Tree.ByType[e.Type] {
			if err := leaf.HandleEvent(e); err != nil {
				return err
			}
		}
		for _, pm := range d.Tree.Root.drain() {
			m := Match(pm.Events)
			if !d.Tree.Pattern.Condition.Eval(bindingFor(d.Tree.Root.Reorder, pm.Events)) {
				return &predicate.EvalError{Binding: bindingFor(d.Tree.Root.Reorder, pm.Events)}
			}
			d.Sink.push(m)
		}
	}
}

// drain removes and returns every currently held match at n — called
// only on the root after a round of event processing has settled.
func (n *Node) drain() []*PartialMatch {
	return n.partials.drain()
}
