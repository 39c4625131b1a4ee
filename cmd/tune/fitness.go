package main

import (
	"math"
	"sync"

	"github.com/doublejbs/interactive-archive/game"
)

// FitnessEvaluator runs headless simulations and scores growth parameters.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	targetCount int

	mu         sync.Mutex
	lastResult runSummary
}

// runSummary aggregates the outcome of one evaluation across seeds.
type runSummary struct {
	AvgBranches float64
	AvgSettled  float64 // fraction of maxTicks until settled, 1.0 if never
	AvgDropped  float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, targetCount int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		targetCount: targetCount,
	}
}

// LastResult returns the summary from the most recent Evaluate call.
func (fe *FitnessEvaluator) LastResult() runSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// seedResult holds the outcome of one seed run.
type seedResult struct {
	branches    int
	settleTicks int
	dropped     int64
	err         error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// The caller must have applied the vector to the global config already; all
// seeds share it, so runs can go in parallel.
func (fe *FitnessEvaluator) Evaluate() float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(s)
		}(i, seed)
	}
	wg.Wait()

	var totalBranches, totalSettle, totalDropped float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		totalBranches += float64(r.branches)
		totalSettle += float64(r.settleTicks) / float64(fe.maxTicks)
		totalDropped += float64(r.dropped)
	}

	n := float64(len(fe.seeds))
	summary := runSummary{
		AvgBranches: totalBranches / n,
		AvgSettled:  totalSettle / n,
		AvgDropped:  totalDropped / n,
	}

	fe.mu.Lock()
	fe.lastResult = summary
	fe.mu.Unlock()

	// Distance from the target count dominates; slow settling and dropped
	// spawns each add a soft penalty.
	countErr := math.Abs(summary.AvgBranches-float64(fe.targetCount)) / float64(fe.targetCount)
	dropFrac := summary.AvgDropped / float64(fe.targetCount)

	return countErr + 0.25*summary.AvgSettled + 0.1*dropFrac
}

// runSimulation runs one headless simulation until the network settles or the
// tick budget runs out.
func (fe *FitnessEvaluator) runSimulation(seed int64) seedResult {
	g, err := game.NewGameWithOptions(game.Options{
		Seed:     seed,
		Headless: true,
	})
	if err != nil {
		return seedResult{err: err}
	}
	defer g.Unload()

	settleTicks := fe.maxTicks
	for int(g.Tick()) < fe.maxTicks {
		g.UpdateHeadless()
		if g.Network().Settled() {
			settleTicks = int(g.Tick())
			break
		}
	}

	return seedResult{
		branches:    g.Network().Count(),
		settleTicks: settleTicks,
		dropped:     g.Network().SpawnsDroppedTotal(),
	}
}
