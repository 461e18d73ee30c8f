package search

import (
	"context"
	"errors"
	"math"

	"github.com/yourbasic/bit"

	"ssdps/dp_search/dataset"
	"ssdps/dp_search/stat"
	"ssdps/dp_search/util/bitset"
	"ssdps/ssdps_config"
)

// errBudget unwinds the heuristic recursion once the iteration budget is spent
var errBudget = errors.New("iteration budget exhausted")

// searcher mutable state of one run, owned by a single goroutine
type searcher struct {
	ctx     context.Context
	cfg     Config
	th      stat.Thresholds
	emitter Emitter
	res     *Result
	// sinceEmit case-phase calls since the last emission
	sinceEmit int
}

func newSearcher(ctx context.Context, cfg Config, emitter Emitter) *searcher {
	return &searcher{
		ctx:     ctx,
		cfg:     cfg,
		th:      cfg.Thresholds,
		emitter: emitter,
		res:     &Result{Method: cfg.Method},
	}
}

// enter counts one case-phase call and checks for cancellation and the budget
func (s *searcher) enter() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	s.res.Calls++
	s.sinceEmit++
	if s.cfg.Method == MethodHeuristic && s.cfg.ItThreshold > 0 && s.sinceEmit >= s.cfg.ItThreshold {
		return errBudget
	}
	return nil
}

func (s *searcher) admissible(group *bitset.Vector, ds *dataset.Dataset) bool {
	return stat.Admissible(ds.Contingency(group), s.th, s.cfg.MinCaseOut)
}

// emit reports group, tid is its covering itemset in ds
func (s *searcher) emit(group *bitset.Vector, tid []int, ds *dataset.Dataset) error {
	table := ds.Contingency(group)
	p := &Pattern{
		Labels:      ds.Labels(tid),
		Group:       group.Clone(),
		Individuals: bit.New(group.Positions()...),
		Table:       table,
		Stats:       stat.Describe(table),
		Thresholds:  s.th,
	}
	s.res.Patterns++
	if err := s.emitter.Emit(p); err != nil {
		return err
	}
	if s.cfg.Method != MethodHeuristic {
		return nil
	}
	s.sinceEmit = 0
	if s.cfg.RatchetOR && p.Stats.HasControls {
		s.th.OR = math.Min(s.th.OR+ssdps_config.RatchetStep, p.Stats.OR)
	}
	return nil
}

// extend returns a copy of p with individual e added
func extend(p *bitset.Vector, e int) *bitset.Vector {
	q := p.Clone()
	q.SetBit(e, true)
	return q
}

// uncovered ids of mask outside group that are smaller than bound, ascending
func uncovered(mask, group *bitset.Vector, bound int) []int {
	k := mask.Clone()
	k.AndNot(group)
	ids := k.Positions()
	for i, id := range ids {
		if id >= bound {
			return ids[:i]
		}
	}
	return ids
}
