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

	"github.com/sneller-cep/cep/cepevent"
)

// PartialMatch is a set of events bound to the names a tree node
// covers: one event per entry of the node's Reorder, in Reorder
// order. FirstDate and LastDate are the earliest and latest event
// timestamps in Events.
type PartialMatch struct {
	Events    []cepevent.Event
	FirstDate time.Time
	LastDate  time.Time
}

func newPartialMatch(events []cepevent.Event) *PartialMatch {
	first, last := events[0].Timestamp, events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp.Before(first) {
			first = e.Timestamp
		}
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	return &PartialMatch{Events: events, FirstDate: first, LastDate: last}
}

// expired reports whether m can no longer combine with anything whose
// earliest event is at or after threshold, under window.
func (m *PartialMatch) expired(threshold time.Time, window time.Duration) bool {
	if window <= 0 {
		return false
	}
	return m.FirstDate.Add(window).Before(threshold)
}
