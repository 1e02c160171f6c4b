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

// PlanState is the one-shot, synchronous lifecycle of a pattern's
// plan: UNINITIALIZED -> STATS_READY -> BLUEPRINT -> TREE_BUILT ->
// RUNNING -> CLOSED. Every transition but RUNNING->CLOSED happens
// during submission; RUNNING->CLOSED happens when the worker observes
// its input stream close.
type PlanState int

const (
	Uninitialized PlanState = iota
	StatsReady
	BlueprintReady
	TreeBuilt
	Running
	Closed
)

func (s PlanState) String() string {
	switch s {
	case Uninitialized:
		return "UNINITIALIZED"
	case StatsReady:
		return "STATS_READY"
	case BlueprintReady:
		return "BLUEPRINT"
	case TreeBuilt:
		return "TREE_BUILT"
	case Running:
		return "RUNNING"
	case Closed:
		return "CLOSED"
	default:
		return fmt.Sprintf("PlanState(%d)", int(s))
	}
}

// next is the single allowed successor of s, or Closed's own value if
// s is terminal.
func (s PlanState) next() PlanState {
	switch s {
	case Uninitialized:
		return StatsReady
	case StatsReady:
		return BlueprintReady
	case BlueprintReady:
		return TreeBuilt
	case TreeBuilt:
		return Running
	default:
		return Closed
	}
}

// Transition advances a *PlanState pointer one step and reports
// whether the move was the single legal one-shot successor. Advancing
// past Closed, or skipping a step, is refused without mutating *s.
func Transition(s *PlanState, to PlanState) error {
	want := s.next()
	if to != want {
		return fmt.Errorf("optimize: illegal plan transition %s -> %s (expected %s)", *s, to, want)
	}
	*s = to
	return nil
}
