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
	"time"

	"github.com/sneller-cep/cep/internal/ordered"
)

// partialStore holds a node's live partial matches, sorted ascending
// by FirstDate. It is owned exclusively by the tree's worker — no
// internal locking (spec.md §5: "no internal concurrency inside a
// tree").
type partialStore struct {
	matches []*PartialMatch
}

func (s *partialStore) insert(m *PartialMatch) {
	s.matches = ordered.Insert(s.matches, m, func(a, b *PartialMatch) bool {
		return a.FirstDate.Before(b.FirstDate)
	})
}

// expireBefore drops every match that cannot combine with anything
// whose earliest event is at or after threshold, given window. A
// non-positive window means unbounded: nothing ever expires.
func (s *partialStore) expireBefore(threshold time.Time, window time.Duration) {
	if window <= 0 {
		return
	}
	s.matches = ordered.DropPrefix(s.matches, func(m *PartialMatch) bool {
		return m.expired(threshold, window)
	})
}

func (s *partialStore) all() []*PartialMatch {
	return s.matches
}

func (s *partialStore) len() int {
	return len(s.matches)
}

// drain removes and returns every currently held match, in order.
func (s *partialStore) drain() []*PartialMatch {
	out := s.matches
	s.matches = nil
	return out
}
