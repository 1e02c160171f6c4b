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
	"sync"

	"github.com/sneller-cep/cep/cepevent"
)

// Match is one complete pattern match: the events bound to
// args[0..n-1] in original declaration order.
type Match []cepevent.Event

// MatchSink is the output container of spec.md §6: a FIFO of complete
// matches, closed once the driver has drained the tree after its
// input stream closed. A positive capacity makes push block while
// full, giving the driver backpressure against a slow consumer (the
// "bounded queues allowed" suspension point of spec.md §5).
type MatchSink struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []Match
	closed   bool
	capacity int
}

// NewMatchSink returns an open sink. capacity <= 0 means unbounded.
func NewMatchSink(capacity int) *MatchSink {
	s := &MatchSink{capacity: capacity}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *MatchSink) push(m Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.capacity > 0 && len(s.items) >= s.capacity && !s.closed {
		s.cond.Wait()
	}
	s.items = append(s.items, m)
	s.cond.Signal()
}

// Pop blocks until a match is available or the sink is closed and
// drained.
func (s *MatchSink) Pop() (Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.items) == 0 && !s.closed {
		s.cond.Wait()
	}
	if len(s.items) == 0 {
		return nil, false
	}
	m := s.items[0]
	s.items = s.items[1:]
	s.cond.Signal()
	return m, true
}

// Close marks the sink closed once the driver has finished draining.
func (s *MatchSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Broadcast()
}
