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

package predicate

import "fmt"

// EvalError indicates a formula failed to hold on a binding that was
// expected to be complete — e.g. a root-level match whose condition,
// despite having been pushed down and satisfied piecewise at every
// tree node, does not hold when re-checked in full. The condition is
// documented as total on complete bindings (spec.md §4.1), so this
// signals a core bug rather than a normal rejection.
type EvalError struct {
	Binding Binding
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("predicate: condition did not hold on complete binding %v", e.Binding)
}
