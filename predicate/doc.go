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

// Package predicate implements the small formula and term algebra that
// pattern conditions are built from: named bindings of event payloads,
// comparisons over them, and conjunction.
//
// The design follows the teacher's expression-tree convention (closed
// node kinds, a Walk-style free-name collector, and an explicit
// projection instead of reflection): each Formula and Term is a small
// struct implementing an unexported marker method, rather than a class
// hierarchy.
package predicate
