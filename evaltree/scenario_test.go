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

// End-to-end scenarios S1-S6 from spec.md §8, run against a trivial
// left-deep plan. optimize_scenario_test.go (in the optimize package)
// re-runs a subset across multiple optimizers to test plan
// independence (spec.md property 5).
package evaltree

import (
	"testing"
	"time"

	"github.com/sneller-cep/cep/blueprint"
	"github.com/sneller-cep/cep/cepevent"
	"github.com/sneller-cep/cep/pattern"
	"github.com/sneller-cep/cep/predicate"
)

func minute(n int) time.Time { return time.Unix(0, 0).Add(time.Duration(n) * time.Minute) }

func evt(typ string, minuteOffset int, fields predicate.Payload) cepevent.Event {
	return cepevent.Event{Type: typ, Timestamp: minute(minuteOffset), Payload: fields}
}

// runScenario builds a trivial left-deep tree over pat, feeds events
// through a driver, and returns every emitted match in emission order.
// matchLabel renders one match as its events' Type strings.
func runScenario(t *testing.T, pat *pattern.Pattern, events []cepevent.Event) []Match {
	t.Helper()
	order := make([]int, len(pat.Args))
	for i := range order {
		order[i] = i
	}
	tree, err := Build(pat, blueprint.LeftDeep(order))
	if err != nil {
		t.Fatal(err)
	}
	d := NewDriver(tree, 0)
	stream := cepevent.NewStream()
	for _, e := range events {
		stream.Push(e)
	}
	stream.Close()

	var matches []Match
	done := make(chan error, 1)
	go func() { done <- d.Run(stream) }()
	for {
		m, ok := d.Sink.Pop()
		if !ok {
			break
		}
		matches = append(matches, m)
	}
	if err := <-done; err != nil {
		t.Fatalf("driver error: %v", err)
	}
	return matches
}

func matchLabel(m Match) []string {
	labels := make([]string, len(m))
	for i, e := range m {
		labels[i] = e.Type
	}
	return labels
}

func gt(a, b predicate.Term) predicate.Formula { return predicate.Comparison{Op: predicate.Gt, Left: a, Right: b} }
func le(a, b predicate.Term) predicate.Formula { return predicate.Comparison{Op: predicate.Le, Left: a, Right: b} }
func lt(a, b predicate.Term) predicate.Formula { return predicate.Comparison{Op: predicate.Lt, Left: a, Right: b} }
func field(name, f string) predicate.Term      { return predicate.Field{Name: name, Field: f} }
func num(v float64) predicate.Term             { return predicate.Atomic{Value: v} }

func TestScenarioS1DescendingSeq(t *testing.T) {
	p, err := pattern.New(pattern.Seq, []pattern.LeafDescriptor{
		{EventType: "AAPL", Name: "a"},
		{EventType: "AMZN", Name: "b"},
		{EventType: "AVID", Name: "c"},
	}, predicate.MakeAnd(
		gt(field("a", "open"), field("b", "open")),
		gt(field("b", "open"), field("c", "open")),
	), 5*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	events := []cepevent.Event{
		evt("AAPL", 0, predicate.Payload{"open": 10.0}),
		evt("AMZN", 1, predicate.Payload{"open": 8.0}),
		evt("AVID", 2, predicate.Payload{"open": 5.0}),
		evt("AVID", 10, predicate.Payload{"open": 5.0}),
	}
	matches := runScenario(t, p, events)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d: %v", len(matches), matches)
	}
	if got := matchLabel(matches[0]); got[0] != "AAPL" || got[1] != "AMZN" || got[2] != "AVID" {
		t.Fatalf("unexpected match shape: %v", got)
	}
	if !matches[0][2].Timestamp.Equal(minute(2)) {
		t.Fatalf("expected the match to use the AVID event at minute 2, not minute 10")
	}
}

func TestScenarioS2Conjunction(t *testing.T) {
	p, err := pattern.New(pattern.And, []pattern.LeafDescriptor{
		{EventType: "AMZN", Name: "a"},
		{EventType: "GOOG", Name: "g"},
	}, predicate.MakeAnd(
		le(field("a", "peak"), num(73)),
		le(field("g", "peak"), num(525)),
	), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	events := []cepevent.Event{
		evt("AMZN", 0, predicate.Payload{"peak": 73.0}),
		evt("GOOG", 0, predicate.Payload{"peak": 520.0}),
		evt("GOOG", 2, predicate.Payload{"peak": 520.0}),
	}
	matches := runScenario(t, p, events)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d: %v", len(matches), matches)
	}
	if !matches[0][1].Timestamp.Equal(minute(0)) {
		t.Fatalf("expected the GOOG event at minute 0 to be chosen, got %v", matches[0][1].Timestamp)
	}
}

func ascendingSeqPattern(t *testing.T, window time.Duration) *pattern.Pattern {
	t.Helper()
	p, err := pattern.New(pattern.Seq, []pattern.LeafDescriptor{
		{EventType: "GOOG", Name: "a"},
		{EventType: "GOOG", Name: "b"},
		{EventType: "GOOG", Name: "c"},
	}, predicate.MakeAnd(
		lt(field("a", "peak"), field("b", "peak")),
		lt(field("b", "peak"), field("c", "peak")),
	), window)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestScenarioS3AscendingSeqExactTriple(t *testing.T) {
	p := ascendingSeqPattern(t, 3*time.Minute)
	events := []cepevent.Event{
		evt("GOOG", 0, predicate.Payload{"peak": 10.0}),
		evt("GOOG", 1, predicate.Payload{"peak": 15.0}),
		evt("GOOG", 2, predicate.Payload{"peak": 20.0}),
	}
	matches := runScenario(t, p, events)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d: %v", len(matches), matches)
	}
}

func TestScenarioS3AscendingSeqWindowExcludesSecondMatch(t *testing.T) {
	p := ascendingSeqPattern(t, 3*time.Minute)
	events := []cepevent.Event{
		evt("GOOG", 0, predicate.Payload{"peak": 10.0}),
		evt("GOOG", 1, predicate.Payload{"peak": 15.0}),
		evt("GOOG", 2, predicate.Payload{"peak": 20.0}),
		evt("GOOG", 5, predicate.Payload{"peak": 25.0}),
	}
	matches := runScenario(t, p, events)
	// [0,1,2] survives; [1,2,5] spans 4 minutes > 3min window and must
	// not appear; [0,1,5],[0,2,5] fail the window guard too.
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match (the window-violating extension excluded), got %d: %v", len(matches), matches)
	}
}

func TestScenarioS3AscendingSeqWithinWindowAddsMatches(t *testing.T) {
	p := ascendingSeqPattern(t, 3*time.Minute)
	events := []cepevent.Event{
		evt("GOOG", 0, predicate.Payload{"peak": 10.0}),
		evt("GOOG", 1, predicate.Payload{"peak": 15.0}),
		evt("GOOG", 2, predicate.Payload{"peak": 20.0}),
		evt("GOOG", 3, predicate.Payload{"peak": 25.0}),
	}
	matches := runScenario(t, p, events)
	// [0,1,2], [1,2,3], [0,1,3], [0,2,3] all satisfy peak ascending and
	// a 3-minute window.
	if len(matches) != 4 {
		t.Fatalf("expected exactly 4 matches, got %d: %v", len(matches), matches)
	}
}

func TestScenarioS4SingleLeafUnaryPredicate(t *testing.T) {
	p, err := pattern.New(pattern.Seq, []pattern.LeafDescriptor{
		{EventType: "AAPL", Name: "a"},
	}, gt(field("a", "open"), num(135)), 0)
	if err != nil {
		t.Fatal(err)
	}
	events := []cepevent.Event{
		evt("AAPL", 0, predicate.Payload{"open": 130.0}),
		evt("AAPL", 1, predicate.Payload{"open": 140.0}),
		evt("AAPL", 2, predicate.Payload{"open": 150.0}),
	}
	matches := runScenario(t, p, events)
	if len(matches) != 2 {
		t.Fatalf("expected exactly 2 matches, got %d: %v", len(matches), matches)
	}
}

func TestScenarioS5SeqRejectsReordered(t *testing.T) {
	p, err := pattern.New(pattern.Seq, []pattern.LeafDescriptor{
		{EventType: "A", Name: "a"},
		{EventType: "B", Name: "b"},
	}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	events := []cepevent.Event{
		evt("B", 0, predicate.Payload{}),
		evt("A", 1, predicate.Payload{}),
	}
	matches := runScenario(t, p, events)
	if len(matches) != 0 {
		t.Fatalf("expected 0 matches for SEQ with reordered arrival, got %d: %v", len(matches), matches)
	}
}

func TestScenarioS5AndAcceptsReordered(t *testing.T) {
	p, err := pattern.New(pattern.And, []pattern.LeafDescriptor{
		{EventType: "A", Name: "a"},
		{EventType: "B", Name: "b"},
	}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	events := []cepevent.Event{
		evt("B", 0, predicate.Payload{}),
		evt("A", 1, predicate.Payload{}),
	}
	matches := runScenario(t, p, events)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match for AND regardless of arrival order, got %d: %v", len(matches), matches)
	}
}

func windowBoundaryPattern(t *testing.T) *pattern.Pattern {
	t.Helper()
	p, err := pattern.New(pattern.Seq, []pattern.LeafDescriptor{
		{EventType: "A", Name: "a"},
		{EventType: "B", Name: "b"},
	}, nil, 5*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestScenarioS6WindowBoundaryInclusive(t *testing.T) {
	p := windowBoundaryPattern(t)
	events := []cepevent.Event{
		evt("A", 0, predicate.Payload{}),
		evt("B", 5, predicate.Payload{}),
	}
	matches := runScenario(t, p, events)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match at the inclusive window boundary, got %d", len(matches))
	}
}

func TestScenarioS6WindowBoundaryExclusive(t *testing.T) {
	p := windowBoundaryPattern(t)
	events := []cepevent.Event{
		evt("A", 0, predicate.Payload{}),
		evt("B", 6, predicate.Payload{}),
	}
	matches := runScenario(t, p, events)
	if len(matches) != 0 {
		t.Fatalf("expected 0 matches just past the window, got %d", len(matches))
	}
}
