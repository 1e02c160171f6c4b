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

// Package cepcore is the single-process CEP façade: it fans one input
// stream into per-pattern duplicate streams and runs one
// evaltree.Driver per pattern on its own goroutine, per spec.md §5
// ("one worker per pattern, each single-threaded inside the
// evaluation tree"). The façade, the worker, and the fan-out are
// declared external collaborators by spec.md §1 — this package gives
// them a concrete, runnable implementation, grounded on the
// teacher's blocking mutex/cond producer-consumer handoff idiom
// (sorting.AsyncConsumer/ThreadPool, adapted here to one goroutine
// per pattern rather than one per sorted row range — see DESIGN.md).
package cepcore

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sneller-cep/cep/cepevent"
	"github.com/sneller-cep/cep/config"
	"github.com/sneller-cep/cep/evaltree"
	"github.com/sneller-cep/cep/optimize"
	"github.com/sneller-cep/cep/pattern"
)

// Handle is what a submitter holds after Facade.Submit: the output
// container for one pattern's matches, plus the bookkeeping the
// façade needs to run and retire its worker.
type Handle struct {
	ID    uuid.UUID
	Sink  *evaltree.MatchSink
	state optimize.PlanState

	pat  *pattern.Pattern
	tree *evaltree.Tree
	opts config.Options

	elapsedMu sync.Mutex
	elapsed   time.Duration
}

// State reports the handle's current plan-lifecycle state (spec.md
// §4.7, "State machine for a pattern plan").
func (h *Handle) State() optimize.PlanState { return h.state }

// Elapsed returns how long the worker spent inside Driver.Run, if
// opts.MeasureElapsed was set. It is recorded once Driver.Run returns
// and reads as zero before then. Guarded by a mutex because the
// worker goroutine writes it while a caller may read it concurrently
// (spec.md §5).
func (h *Handle) Elapsed() time.Duration {
	h.elapsedMu.Lock()
	defer h.elapsedMu.Unlock()
	return h.elapsed
}

func (h *Handle) setElapsed(d time.Duration) {
	h.elapsedMu.Lock()
	h.elapsed = d
	h.elapsedMu.Unlock()
}

// Facade registers one worker per submitted pattern and fans a
// shared input stream to each. It has no supervision or restart
// logic: SPEC_FULL.md §3.2 calls the façade and its worker
// "intentionally thin."
type Facade struct {
	mu      sync.Mutex
	handles map[uuid.UUID]*Handle
}

// NewFacade returns an empty façade.
func NewFacade() *Facade {
	return &Facade{handles: make(map[uuid.UUID]*Handle)}
}

// Submit compiles pat into a blueprint and a tree under opts,
// advancing its PlanState from UNINITIALIZED through TREE_BUILT
// (spec.md §4.7), and registers a worker for it keyed by pat.ID. It
// does not start the worker — Run does, once every pattern sharing
// the input stream has reached TREE_BUILT — so a malformed plan or
// missing statistics in one pattern never leaves another half-started.
//
// sample, if non-nil, is drained once to derive pat.Stats when
// opts.Statistics requests derived statistics and pat.Stats is not
// already populated (spec.md's "Statistics collection" section); it
// is typically src.Duplicate() taken before Run begins consuming src.
func (f *Facade) Submit(pat *pattern.Pattern, opts config.Options, sample *cepevent.Stream) (*Handle, error) {
	h := &Handle{ID: pat.ID, pat: pat, opts: opts, state: optimize.Uninitialized}

	if opts.Window > 0 {
		pat.Window = opts.Window
	}

	if pat.Stats == nil && opts.Statistics != config.NoStatistics && sample != nil {
		if opts.Statistics == config.FrequencyMap {
			pat.Stats = optimize.CollectFrequency(pat, sample)
		} else {
			pat.Stats = optimize.CollectStatistics(pat, sample)
		}
	}
	if err := optimize.Transition(&h.state, optimize.StatsReady); err != nil {
		return nil, err
	}

	bp, err := optimize.Plan(pat, opts.Optimizer)
	if err != nil {
		return nil, fmt.Errorf("cepcore: submit %s: %w", pat.ID, err)
	}
	if err := optimize.Transition(&h.state, optimize.BlueprintReady); err != nil {
		return nil, err
	}
	logger.Printf("pattern %s: selected %s optimizer", pat.ID, opts.Optimizer)

	tree, err := evaltree.Build(pat, bp)
	if err != nil {
		return nil, fmt.Errorf("cepcore: submit %s: %w", pat.ID, err)
	}
	if err := optimize.Transition(&h.state, optimize.TreeBuilt); err != nil {
		return nil, err
	}
	h.tree = tree
	h.Sink = evaltree.NewMatchSink(0)

	f.mu.Lock()
	f.handles[pat.ID] = h
	f.mu.Unlock()
	return h, nil
}

// Run fans src into one duplicate stream per registered handle and
// starts one driver goroutine per handle, then blocks until src
// closes and every worker has drained and closed its sink. It
// returns the first fatal error any worker reports; the rest still
// run to completion (spec.md §7: "no local retries", but a fatal
// error in one pattern must not silently starve another).
func (f *Facade) Run(src *cepevent.Stream) error {
	f.mu.Lock()
	handles := make([]*Handle, 0, len(f.handles))
	for _, h := range f.handles {
		handles = append(handles, h)
	}
	f.mu.Unlock()

	streams := make([]*cepevent.Stream, len(handles))
	for i := range streams {
		streams[i] = cepevent.NewStream()
	}

	go fanOut(src, streams)

	var wg sync.WaitGroup
	errs := make([]error, len(handles))
	for i, h := range handles {
		h := h
		stream := streams[i]
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = runWorker(h, stream)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// fanOut copies every event popped from src to each of outs, in the
// order received, then closes every out once src closes. It is the
// façade's fan-out step; the per-pattern evaluation itself runs in
// runWorker.
func fanOut(src *cepevent.Stream, outs []*cepevent.Stream) {
	for {
		e, ok := src.Pop()
		if !ok {
			break
		}
		for _, out := range outs {
			out.Push(e)
		}
	}
	for _, out := range outs {
		out.Close()
	}
}

func runWorker(h *Handle, stream *cepevent.Stream) error {
	if err := optimize.Transition(&h.state, optimize.Running); err != nil {
		return err
	}
	driver := &evaltree.Driver{Tree: h.tree, Sink: h.Sink}

	var start time.Time
	if h.opts.MeasureElapsed {
		start = time.Now()
	}
	err := driver.Run(stream)
	if h.opts.MeasureElapsed {
		h.setElapsed(time.Since(start))
	}

	// Closed is the only state reachable from Running; Transition's
	// one-shot contract is satisfied whether or not the driver
	// reported an error, because stream closure is terminal either way
	// (spec.md §7, "Stream closed: terminal").
	_ = optimize.Transition(&h.state, optimize.Closed)
	if err != nil {
		logger.Printf("pattern %s: worker stopped: %v", h.pat.ID, err)
		return fmt.Errorf("cepcore: pattern %s: %w", h.pat.ID, err)
	}
	logger.Printf("pattern %s: worker closed", h.pat.ID)
	return nil
}
