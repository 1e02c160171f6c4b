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
	"github.com/sneller-cep/cep/cepevent"
	"github.com/sneller-cep/cep/pattern"
	"github.com/sneller-cep/cep/predicate"
)

// CollectStatistics drains dup (a Stream.Duplicate of the pattern's
// live input, per spec.md's "Statistics collection" section) and
// returns the full selectivity-matrix/arrival-rate statistics for pat.
// dup must eventually close; CollectStatistics blocks until it does.
func CollectStatistics(pat *pattern.Pattern, dup *cepevent.Stream) *pattern.Statistics {
	n := len(pat.Args)
	byType := make(map[string][]cepevent.Event)
	var first, last cepevent.Event
	haveAny := false
	for {
		e, ok := dup.Pop()
		if !ok {
			break
		}
		byType[e.Type] = append(byType[e.Type], e)
		if !haveAny || e.Timestamp.Before(first.Timestamp) {
			first = e
		}
		if !haveAny || e.Timestamp.After(last.Timestamp) {
			last = e
		}
		haveAny = true
	}

	elapsed := last.Timestamp.Sub(first.Timestamp).Seconds()
	rates := make([]float64, n)
	for i, a := range pat.Args {
		count := len(byType[a.EventType])
		if elapsed > 0 {
			rates[i] = float64(count) / elapsed
		}
	}

	sel := make([][]float64, n)
	for i := range sel {
		sel[i] = make([]float64, n)
	}
	for i, ai := range pat.Args {
		sel[i][i] = unarySelectivity(pat, i, byType[ai.EventType])
		for j := i + 1; j < n; j++ {
			s := pairSelectivity(pat, i, j, byType[ai.EventType], byType[pat.Args[j].EventType])
			sel[i][j] = s
			sel[j][i] = s
		}
	}

	return &pattern.Statistics{
		Kind:         pattern.SelectivityRatesStats,
		Selectivity:  sel,
		ArrivalRates: rates,
	}
}

// CollectFrequency drains dup and returns only a per-type observed
// count, enough for optimize.AscendingFrequency and cheaper than the
// full selectivity matrix CollectStatistics computes.
func CollectFrequency(pat *pattern.Pattern, dup *cepevent.Stream) *pattern.Statistics {
	freq := make(map[string]int, len(pat.Args))
	for {
		e, ok := dup.Pop()
		if !ok {
			break
		}
		freq[e.Type]++
	}
	return &pattern.Statistics{Kind: pattern.FrequencyMapStats, FrequencyMap: freq}
}

// unarySelectivity is the ratio of events of args[i].event_type
// satisfying the condition's unary projection onto {args[i].name} to
// the total count of that type.
func unarySelectivity(pat *pattern.Pattern, i int, events []cepevent.Event) float64 {
	if len(events) == 0 {
		return 1
	}
	name := pat.Args[i].Name
	proj := pat.Condition.Project(map[string]struct{}{name: {}})
	pass := 0
	for _, e := range events {
		b := predicate.Binding{name: e.Payload}
		if proj.Eval(b) {
			pass++
		}
	}
	return float64(pass) / float64(len(events))
}

// pairSelectivity is the ratio of (for SEQ, ordered; for AND,
// unordered) pairs of events of types args[i].event_type and
// args[j].event_type satisfying the projected two-name condition to
// the total number of pairs considered.
func pairSelectivity(pat *pattern.Pattern, i, j int, left, right []cepevent.Event) float64 {
	if len(left) == 0 || len(right) == 0 {
		return 1
	}
	ni, nj := pat.Args[i].Name, pat.Args[j].Name
	proj := pat.Condition.Project(map[string]struct{}{ni: {}, nj: {}})
	var total, pass int
	for _, ei := range left {
		for _, ej := range right {
			if pat.Top == pattern.Seq && ei.Timestamp.After(ej.Timestamp) {
				continue
			}
			total++
			b := predicate.Binding{ni: ei.Payload, nj: ej.Payload}
			if proj.Eval(b) {
				pass++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(pass) / float64(total)
}
