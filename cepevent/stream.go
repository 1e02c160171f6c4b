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

package cepevent

import "sync"

// Stream is a blocking, closable FIFO of events. Producers call Push
// until they call Close; consumers call Pop until it reports closed.
// One goroutine typically produces while another (the evaluation
// driver's worker) consumes, so Stream guards its queue with a
// sync.Mutex/sync.Cond pair rather than requiring external
// synchronization — the same blocking producer/consumer handoff
// cepcore.Facade uses to fan one stream out to several workers.
type Stream struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Event
	closed bool
	next   uint64
}

// NewStream returns an empty, open stream.
func NewStream() *Stream {
	s := &Stream{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Push appends e to the stream, assigning it the next stream counter
// if it does not already carry a nonzero one. Push on a closed stream
// panics: closing is the single, caller-owned cancellation signal and
// producing after close is a programmer error.
func (s *Stream) Push(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic("cepevent: Push on a closed Stream")
	}
	if e.Counter == 0 {
		s.next++
		e.Counter = s.next
	} else if e.Counter > s.next {
		s.next = e.Counter
	}
	s.items = append(s.items, e)
	s.cond.Signal()
}

// Pop blocks until an event is available or the stream is closed and
// drained. ok is false exactly when the stream is closed and empty.
func (s *Stream) Pop() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.items) == 0 && !s.closed {
		s.cond.Wait()
	}
	if len(s.items) == 0 {
		return Event{}, false
	}
	e := s.items[0]
	s.items = s.items[1:]
	return e, true
}

// Close marks the stream closed: pending Pop calls drain whatever is
// queued, then subsequent Pops return ok=false.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Broadcast()
}

// Duplicate returns a new, independent, already-closed stream
// carrying a snapshot of the events currently queued — for an
// offline statistics pass that must not interfere with the live
// consumer. It is closed because it is a finite point-in-time copy:
// nothing will ever Push to it, and a statistics pass that Pops it
// until exhaustion must observe ok=false instead of blocking forever.
func (s *Stream) Duplicate() *Stream {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := NewStream()
	dup.items = append([]Event(nil), s.items...)
	dup.next = s.next
	dup.closed = true
	return dup
}
