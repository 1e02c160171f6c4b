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

import (
	"github.com/sneller-cep/cep/blueprint"
	"github.com/sneller-cep/cep/pattern"
)

// Plan turns pat plus its statistics into a blueprint using alg. It
// returns a *MissingStatisticsError, never starting a worker, when
// alg's statistics requirement is not met by pat.Stats (spec.md §7).
func Plan(pat *pattern.Pattern, alg Algorithm) (*blueprint.Blueprint, error) {
	n := len(pat.Args)
	if alg.requiresFrequency() {
		if pat.Stats == nil || pat.Stats.Kind == pattern.NoStatistics {
			return nil, &MissingStatisticsError{Algorithm: alg, Reason: "a frequency map or arrival rates"}
		}
	}
	if alg.requiresSelectivity() {
		if pat.Stats == nil || pat.Stats.Kind != pattern.SelectivityRatesStats {
			return nil, &MissingStatisticsError{Algorithm: alg, Reason: "a selectivity matrix and arrival rates"}
		}
	}

	windowSeconds := pat.Window.Seconds()

	switch alg {
	case Trivial:
		return blueprint.LeftDeep(trivialOrder(n)), nil
	case AscendingFrequency:
		return blueprint.LeftDeep(ascendingFrequencyOrder(pat)), nil
	case Greedy:
		return blueprint.LeftDeep(greedyOrder(pat.Stats.Selectivity, pat.Stats.ArrivalRates)), nil
	case DPLeftDeep:
		return blueprint.LeftDeep(dpLeftDeepOrder(pat.Stats.Selectivity, pat.Stats.ArrivalRates, windowSeconds)), nil
	case IISwap:
		return blueprint.LeftDeep(iiSwapOrder(pat.Stats.Selectivity, pat.Stats.ArrivalRates, windowSeconds)), nil
	case IICircle:
		return blueprint.LeftDeep(iiCircleOrder(pat.Stats.Selectivity, pat.Stats.ArrivalRates, windowSeconds)), nil
	case DPBushy:
		return dpBushyBlueprint(pat.Stats.Selectivity, pat.Stats.ArrivalRates, windowSeconds), nil
	case ZStream:
		return zstreamBlueprint(trivialOrder(n), pat.Stats.Selectivity, pat.Stats.ArrivalRates, windowSeconds), nil
	case ZStreamOrd:
		seed := greedyOrder(pat.Stats.Selectivity, pat.Stats.ArrivalRates)
		return zstreamBlueprint(seed, pat.Stats.Selectivity, pat.Stats.ArrivalRates, windowSeconds), nil
	default:
		return blueprint.LeftDeep(trivialOrder(n)), nil
	}
}
