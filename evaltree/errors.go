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

import "fmt"

// MalformedPlanError is returned by Build when a blueprint does not
// cover its pattern's leaf indices exactly once, or when a built
// node's reorder invariant does not hold. It is fatal for the
// pattern: evaluation must refuse to start (spec.md §7).
type MalformedPlanError struct {
	Reason string
}

func (e *MalformedPlanError) Error() string {
	return fmt.Sprintf("evaltree: malformed plan: %s", e.Reason)
}

// WrongEventTypeError indicates a leaf received an event whose type
// does not match its descriptor — a dispatcher bug, not a normal
// rejection, per spec.md §7.
type WrongEventTypeError struct {
	Expected, Got string
}

func (e *WrongEventTypeError) Error() string {
	return fmt.Sprintf("evaltree: leaf expected event type %q, got %q", e.Expected, e.Got)
}
