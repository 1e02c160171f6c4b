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

// Package cepevent defines the timestamped, typed events that flow
// through a CEP stream, and the blocking stream that carries them.
package cepevent

import (
	"time"

	"github.com/sneller-cep/cep/predicate"
)

// Event is a single occurrence: a payload, a type tag, and a position
// in stream order. Events are immutable after construction.
type Event struct {
	Payload   predicate.Payload
	Type      string
	Timestamp time.Time
	// Counter is assigned by the Stream that produced the event and
	// totally orders events that share a Timestamp.
	Counter uint64
}

// Less reports whether e sorts strictly before other under the
// (Timestamp, Counter) total order the sequence guard relies on.
func (e Event) Less(other Event) bool {
	if !e.Timestamp.Equal(other.Timestamp) {
		return e.Timestamp.Before(other.Timestamp)
	}
	return e.Counter < other.Counter
}
