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
	"testing"
	"time"

	"github.com/sneller-cep/cep/blueprint"
	"github.com/sneller-cep/cep/pattern"
	"github.com/sneller-cep/cep/predicate"
)

// fixtureStats is a small, symmetric 4-leaf selectivity matrix and
// arrival-rate vector used to exercise every blueprint-producing
// algorithm without needing a live stream.
func fixtureStats() ([][]float64, []float64) {
	sel := [][]float64{
		{0.9, 0.3, 0.8, 0.5},
		{0.3, 0.6, 0.2, 0.9},
		{0.8, 0.2, 0.4, 0.1},
		{0.5, 0.9, 0.1, 0.7},
	}
	rates := []float64{5.0, 1.0, 3.0, 2.0}
	return sel, rates
}

// assertPermutation fails t unless order is a permutation of [0,n).
func assertPermutation(t *testing.T, order []int, n int) {
	t.Helper()
	if len(order) != n {
		t.Fatalf("expected order of length %d, got %d: %v", n, len(order), order)
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			t.Fatalf("order %v is not a permutation of [0,%d)", order, n)
		}
		seen[i] = true
	}
}

func bruteForceBestOrderCost(sel [][]float64, rates []float64, w float64) float64 {
	n := len(rates)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := OrderCost(perm, sel, rates, w)
	var permute func(k int)
	permute = func(k int) {
		if k == n {
			if c := OrderCost(perm, sel, rates, w); c < best {
				best = c
			}
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			permute(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	permute(0)
	return best
}

func TestGreedyOrderIsPermutation(t *testing.T) {
	sel, rates := fixtureStats()
	order := greedyOrder(sel, rates)
	assertPermutation(t, order, len(rates))
}

func TestGreedyOrderPicksCheapestFirstLeaf(t *testing.T) {
	// Leaf 1 has the smallest s[i][i]*rate[i] (0.6*1.0=0.6), smaller
	// than leaf 0 (0.9*5=4.5), leaf 2 (0.4*3=1.2), leaf 3 (0.7*2=1.4).
	sel, rates := fixtureStats()
	order := greedyOrder(sel, rates)
	if order[0] != 1 {
		t.Fatalf("expected greedy to start with leaf 1, got order %v", order)
	}
}

func TestDPLeftDeepOrderIsPermutation(t *testing.T) {
	sel, rates := fixtureStats()
	order := dpLeftDeepOrder(sel, rates, 10)
	assertPermutation(t, order, len(rates))
}

func TestDPLeftDeepOrderIsOptimal(t *testing.T) {
	sel, rates := fixtureStats()
	w := 10.0
	order := dpLeftDeepOrder(sel, rates, w)
	got := OrderCost(order, sel, rates, w)
	want := bruteForceBestOrderCost(sel, rates, w)
	if got > want+1e-9 {
		t.Fatalf("dp-left-deep cost %v exceeds brute-force optimum %v (order %v)", got, want, order)
	}
}

func TestDPLeftDeepNeverWorseThanGreedy(t *testing.T) {
	sel, rates := fixtureStats()
	w := 10.0
	dpCost := OrderCost(dpLeftDeepOrder(sel, rates, w), sel, rates, w)
	greedyCost := OrderCost(greedyOrder(sel, rates), sel, rates, w)
	if dpCost > greedyCost+1e-9 {
		t.Fatalf("exact DP cost %v should never exceed greedy's %v", dpCost, greedyCost)
	}
}

func TestIISwapOrderIsPermutationAndNeverWorseThanSeed(t *testing.T) {
	sel, rates := fixtureStats()
	w := 10.0
	seedCost := OrderCost(greedyOrder(sel, rates), sel, rates, w)
	order := iiSwapOrder(sel, rates, w)
	assertPermutation(t, order, len(rates))
	got := OrderCost(order, sel, rates, w)
	if got > seedCost+1e-9 {
		t.Fatalf("ii-swap cost %v exceeds its greedy seed's cost %v", got, seedCost)
	}
}

func TestIICircleOrderIsPermutationAndNeverWorseThanSeed(t *testing.T) {
	sel, rates := fixtureStats()
	w := 10.0
	seedCost := OrderCost(greedyOrder(sel, rates), sel, rates, w)
	order := iiCircleOrder(sel, rates, w)
	assertPermutation(t, order, len(rates))
	got := OrderCost(order, sel, rates, w)
	if got > seedCost+1e-9 {
		t.Fatalf("ii-circle cost %v exceeds its greedy seed's cost %v", got, seedCost)
	}
}

func TestDPBushyBlueprintIsValid(t *testing.T) {
	sel, rates := fixtureStats()
	bp := dpBushyBlueprint(sel, rates, 10)
	if err := blueprint.Validate(bp, len(rates)); err != nil {
		t.Fatalf("dp-bushy blueprint invalid: %v", err)
	}
}

func TestDPBushyNeverWorseThanLeftDeepTrivial(t *testing.T) {
	sel, rates := fixtureStats()
	w := 10.0
	bushy := dpBushyBlueprint(sel, rates, w)
	leftDeep := blueprint.LeftDeep(trivialOrder(len(rates)))
	bushyCost := TreeCost(bushy, sel, rates, w)
	leftDeepCost := TreeCost(leftDeep, sel, rates, w)
	if bushyCost > leftDeepCost+1e-9 {
		t.Fatalf("bushy DP cost %v exceeds a left-deep tree's cost %v", bushyCost, leftDeepCost)
	}
}

func TestZStreamBlueprintIsValid(t *testing.T) {
	sel, rates := fixtureStats()
	n := len(rates)
	bp := zstreamBlueprint(trivialOrder(n), sel, rates, 10)
	if err := blueprint.Validate(bp, n); err != nil {
		t.Fatalf("zstream blueprint invalid: %v", err)
	}
}

func TestZStreamAndZStreamOrdCostsArePositive(t *testing.T) {
	sel, rates := fixtureStats()
	w := 10.0
	n := len(rates)
	plain := zstreamBlueprint(trivialOrder(n), sel, rates, w)
	seeded := zstreamBlueprint(greedyOrder(sel, rates), sel, rates, w)
	plainCost := TreeCost(plain, sel, rates, w)
	seededCost := TreeCost(seeded, sel, rates, w)
	// Both bracket their own fixed order optimally; seeding from the
	// greedy order is not guaranteed to win on every fixture, but both
	// must be valid, finite-cost trees over the full leaf set.
	if plainCost <= 0 || seededCost <= 0 {
		t.Fatalf("expected positive tree costs, got plain=%v seeded=%v", plainCost, seededCost)
	}
}

func TestAscendingFrequencyOrderSortsByRate(t *testing.T) {
	_, rates := fixtureStats()
	args := []pattern.LeafDescriptor{
		{EventType: "A", Name: "a"},
		{EventType: "B", Name: "b"},
		{EventType: "C", Name: "c"},
		{EventType: "D", Name: "d"},
	}
	pat, err := pattern.New(pattern.Seq, args, predicate.TrueFormula, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	pat.Stats = &pattern.Statistics{Kind: pattern.SelectivityRatesStats, ArrivalRates: rates}

	order := ascendingFrequencyOrder(pat)
	assertPermutation(t, order, len(rates))
	// rates = [5,1,3,2]; ascending order by rate is 1,3,2,0.
	want := []int{1, 3, 2, 0}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected ascending-rate order %v, got %v", want, order)
		}
	}
}
