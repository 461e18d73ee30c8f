package search

import (
	"context"
	"errors"
	"time"

	"ssdps/dp_search/dataset"
	"ssdps/share/base/logger"
)

// Run mines ds with the configured method and streams patterns to emitter.
// A spent heuristic budget is reported in the result, not as an error.
func Run(ctx context.Context, ds *dataset.Dataset, cfg Config, emitter Emitter) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if emitter == nil {
		emitter = &Collector{}
	}
	s := newSearcher(ctx, cfg, emitter)
	start := time.Now()

	var err error
	switch cfg.Method {
	case MethodHeuristic:
		err = s.heuristic(ds)
	default:
		err = s.exhaustive(ds)
	}
	s.res.Elapsed = time.Since(start)
	s.res.ORThreshold = s.th.OR

	if errors.Is(err, errBudget) {
		s.res.BudgetExhausted = true
		logger.Infof("%s search stopped after %d calls without a new pattern", cfg.Method, cfg.ItThreshold)
		err = nil
	}
	if err != nil {
		return s.res, err
	}
	logger.Infof("%s search done: %d patterns, %d calls, %d case prunes, %d control prunes, spent %v",
		cfg.Method, s.res.Patterns, s.res.Calls, s.res.CasePrunes, s.res.ControlPrunes, s.res.Elapsed)
	return s.res, nil
}

// Exhaustive enumerates every admissible closed pattern reachable from the case pivots
func Exhaustive(ctx context.Context, ds *dataset.Dataset, cfg Config, emitter Emitter) (*Result, error) {
	cfg.Method = MethodExhaustive
	return Run(ctx, ds, cfg, emitter)
}

// Heuristic looks for the largest patterns under an iteration budget
func Heuristic(ctx context.Context, ds *dataset.Dataset, cfg Config, emitter Emitter) (*Result, error) {
	cfg.Method = MethodHeuristic
	return Run(ctx, ds, cfg, emitter)
}
