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

package optimize

import "fmt"

// MissingStatisticsError is returned by Plan when alg requires
// statistics the pattern does not carry. It is fatal at submission:
// the worker never starts (spec.md §7).
type MissingStatisticsError struct {
	Algorithm Algorithm
	Reason    string
}

func (e *MissingStatisticsError) Error() string {
	return fmt.Sprintf("optimize: %s requires %s", e.Algorithm, e.Reason)
}
