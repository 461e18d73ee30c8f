package search

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ssdps/dp_search/closure"
	"ssdps/dp_search/dataset"
	"ssdps/dp_search/stat"
	"ssdps/utils"
)

func build(nbCase, nbControl int, rows ...string) *dataset.Dataset {
	ds, _, err := dataset.Build(rows, nbCase, nbControl, dataset.Filter{})
	if err != nil {
		panic(err)
	}
	return ds
}

func mine(ds *dataset.Dataset, cfg Config) (*Result, []*Pattern, error) {
	c := &Collector{}
	res, err := Run(context.Background(), ds, cfg, c)
	return res, c.Patterns, err
}

func TestConfig(t *testing.T) {
	Convey("configuration", t, func() {
		m, err := ParseMethod(" Heuristic ")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, MethodHeuristic)
		m, err = ParseMethod("")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, MethodExhaustive)
		_, err = ParseMethod("greedy")
		So(errors.Is(err, utils.ErrUnknownMethod), ShouldBeTrue)

		cfg := DefaultConfig()
		So(cfg.Validate(), ShouldBeNil)
		So(cfg.ItThreshold, ShouldEqual, 1000000)
		cfg.MinCaseOut = -1
		So(errors.Is(cfg.Validate(), utils.ErrParameter), ShouldBeTrue)
		cfg = DefaultConfig()
		cfg.Method = "greedy"
		_, err = Run(context.Background(), build(1, 1, "11"), cfg, nil)
		So(errors.Is(err, utils.ErrUnknownMethod), ShouldBeTrue)
	})
}

func TestExhaustive(t *testing.T) {
	Convey("exhaustive search", t, func() {
		Convey("a group carried by a single item is never a pattern", func() {
			ds := build(4, 2, "111100")
			cfg := DefaultConfig()
			cfg.MinCaseOut = 1

			res, patterns, err := mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Calls, ShouldEqual, 4)
			So(res.Patterns, ShouldEqual, 0)
			So(patterns, ShouldBeEmpty)
		})

		Convey("a pure-case pattern needs more than min_case_out cases", func() {
			ds := build(4, 2, "111100", "111111")
			cfg := DefaultConfig()
			cfg.MinCaseOut = 1

			res, patterns, err := mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Patterns, ShouldEqual, 1)
			So(res.Calls, ShouldEqual, 4)
			So(res.CasePrunes, ShouldEqual, 3)
			So(patterns, ShouldHaveLength, 1)
			p := patterns[0]
			So(p.Labels, ShouldResemble, []int{0, 1})
			So(p.Group.String(), ShouldEqual, "111100")
			So(p.Individuals.Size(), ShouldEqual, 4)
			So(p.Individuals.Contains(3), ShouldBeTrue)
			So(p.Stats.HasControls, ShouldBeFalse)
			So(p.Stats.CasePct, ShouldEqual, 100.0)

			cfg.MinCaseOut = 4
			res, patterns, err = mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Patterns, ShouldEqual, 0)
			So(patterns, ShouldBeEmpty)
		})

		Convey("an infinite odds ratio passes a finite threshold", func() {
			ds := build(4, 4, "11111000", "11111100")
			cfg := DefaultConfig()
			cfg.Thresholds = stat.Thresholds{OR: 1, RR: 0.5, ARR: 0}

			res, patterns, err := mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Patterns, ShouldEqual, 1)
			So(res.ControlExpansions, ShouldEqual, 1)
			p := patterns[0]
			So(p.Group.String(), ShouldEqual, "11111000")
			So(p.Labels, ShouldResemble, []int{0, 1})
			So(p.Table, ShouldResemble, stat.Table{A: 4, B: 0, C: 1, D: 3})
			So(math.IsInf(p.Stats.OR, 1), ShouldBeTrue)
			So(p.Stats.RR, ShouldAlmostEqual, 4.0, 1e-9)

			// the risk ratio bound is about 0.73
			cfg.Thresholds.RR = 1
			res, _, err = mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Patterns, ShouldEqual, 0)
			So(res.ControlPrunes, ShouldEqual, 1)
		})

		Convey("the iteration budget does not apply", func() {
			ds := build(8, 0, "11111111", "11111111")
			cfg := DefaultConfig()
			cfg.MinCaseOut = 100
			cfg.ItThreshold = 5
			res, _, err := mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Calls, ShouldEqual, 8)
			So(res.BudgetExhausted, ShouldBeFalse)
		})

		Convey("pivots below min_case are skipped", func() {
			ds := build(4, 2, "111100", "111111")
			cfg := DefaultConfig()
			cfg.MinCase = 3
			res, _, err := mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Calls, ShouldEqual, 1)
			So(res.Patterns, ShouldEqual, 1)
		})
	})
}

func TestHeuristic(t *testing.T) {
	Convey("heuristic search", t, func() {
		Convey("the budget stops the run and keeps the counters", func() {
			ds := build(8, 0, "11111111", "11111111")
			cfg := DefaultConfig()
			cfg.Method = MethodHeuristic
			cfg.MinCaseOut = 100
			cfg.ItThreshold = 5

			res, patterns, err := mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Calls, ShouldEqual, 5)
			So(res.BudgetExhausted, ShouldBeTrue)
			So(res.Patterns, ShouldEqual, 0)
			So(patterns, ShouldBeEmpty)

			cfg.ItThreshold = 0
			res, _, err = mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.Calls, ShouldEqual, 8)
			So(res.BudgetExhausted, ShouldBeFalse)
		})

		Convey("an emission restarts the budget count", func() {
			// pivot 3 emits the pure-case group, pivots 2, 1 and 0 are pruned
			ds := build(4, 2, "111100", "111111")
			cfg := DefaultConfig()
			cfg.Method = MethodHeuristic
			cfg.MinCaseOut = 1
			cfg.ItThreshold = 3

			res, patterns, err := mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.BudgetExhausted, ShouldBeTrue)
			So(res.Patterns, ShouldEqual, 1)
			So(patterns[0].Labels, ShouldResemble, []int{0, 1})
			// one call before the emission, three after it
			So(res.Calls, ShouldEqual, 4)
			So(res.CasePrunes, ShouldEqual, 2)

			s := newSearcher(context.Background(), cfg, &Collector{})
			So(s.heuristic(ds), ShouldEqual, errBudget)
			So(s.sinceEmit, ShouldEqual, cfg.ItThreshold)
			So(s.res.Calls, ShouldEqual, 4)

			cfg.ItThreshold = 4
			res, _, err = mine(ds, cfg)
			So(err, ShouldBeNil)
			So(res.BudgetExhausted, ShouldBeFalse)
			So(res.CasePrunes, ShouldEqual, 3)

			exhaustive, _, err := mine(ds, DefaultConfig())
			So(err, ShouldBeNil)
			So(res.Patterns, ShouldBeLessThanOrEqualTo, exhaustive.Patterns)
		})

		Convey("the odds ratio threshold ratchets after a pattern with controls", func() {
			ds := build(4, 4, "11111000", "11111100")
			cfg := DefaultConfig()
			cfg.Thresholds = stat.Thresholds{OR: 1, RR: 0.5, ARR: 0}

			res, err := Heuristic(context.Background(), ds, cfg, nil)
			So(err, ShouldBeNil)
			So(res.Method, ShouldEqual, MethodHeuristic)
			So(res.Patterns, ShouldEqual, 1)
			So(res.Calls, ShouldEqual, 4)
			So(res.CasePrunes, ShouldEqual, 3)
			So(res.ORThreshold, ShouldAlmostEqual, 1.1, 1e-9)

			c := &Collector{}
			cfg.RatchetOR = false
			res, err = Heuristic(context.Background(), ds, cfg, c)
			So(err, ShouldBeNil)
			So(res.ORThreshold, ShouldEqual, 1.0)
			So(c.Patterns, ShouldHaveLength, 1)
			So(c.Patterns[0].Group.String(), ShouldEqual, "11111000")
			So(c.Patterns[0].Thresholds.OR, ShouldEqual, 1.0)
		})

		Convey("the ratchet never passes the odds ratio of the pattern", func() {
			ds := build(4, 4, "11101000")
			cfg := DefaultConfig()
			cfg.Method = MethodHeuristic
			s := newSearcher(context.Background(), cfg, &Collector{})
			group := ds.Items[0].Support
			// a=3 b=1 c=1 d=3, OR 9
			s.th.OR = 8.95
			So(s.emit(group, []int{0}, ds), ShouldBeNil)
			So(s.th.OR, ShouldAlmostEqual, 9.0, 1e-9)
			s.th.OR = 5
			s.sinceEmit = 3
			So(s.emit(group, []int{0}, ds), ShouldBeNil)
			So(s.th.OR, ShouldAlmostEqual, 5.1, 1e-9)
			So(s.sinceEmit, ShouldEqual, 0)
			So(s.res.Patterns, ShouldEqual, 2)
		})
	})
}

func TestStop(t *testing.T) {
	Convey("stopping a run", t, func() {
		ds := build(4, 2, "111100", "111111")

		Convey("a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := Exhaustive(ctx, ds, DefaultConfig(), nil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("an emitter failure", func() {
			boom := errors.New("boom")
			cfg := DefaultConfig()
			cfg.MinCaseOut = 1
			res, err := Run(context.Background(), ds, cfg, EmitterFunc(func(p *Pattern) error {
				return boom
			}))
			So(errors.Is(err, boom), ShouldBeTrue)
			So(res.Patterns, ShouldEqual, 1)
		})
	})
}

func TestReducedDatasetFidelity(t *testing.T) {
	Convey("projection below a parent group", t, func() {
		ds := build(4, 3, "1111100", "1101110", "0111011", "1100101", "1111111")

		Convey("covering itemsets match the full dataset", func() {
			parent := ds.NewGroup()
			parent.SetBit(0, true)
			reduced := closure.Project(closure.Covering(parent, ds), ds)

			for extra := 0; extra < ds.NbSample; extra++ {
				child := parent.Clone()
				child.SetBit(extra, true)
				So(reduced.Labels(closure.Covering(child, reduced)), ShouldResemble, ds.Labels(closure.Covering(child, ds)))
			}
		})

		Convey("mining from the parent finds the same patterns", func() {
			parent := ds.NewGroup()
			parent.FillWithOnes(0, 2)
			reduced := closure.Project(closure.Covering(parent, ds), ds)
			So(reduced.Labels([]int{0, 1, 2, 3}), ShouldResemble, []int{0, 1, 3, 4})

			cfg := DefaultConfig()
			cfg.Thresholds = stat.Thresholds{OR: 0, RR: 0, ARR: -1}
			expand := func(d *dataset.Dataset) ([][]int, []string) {
				c := &Collector{}
				s := newSearcher(context.Background(), cfg, c)
				So(s.expandCaseExh(parent, 3, d), ShouldBeNil)
				var labels [][]int
				var groups []string
				for _, p := range c.Patterns {
					labels = append(labels, p.Labels)
					groups = append(groups, p.Group.String())
				}
				return labels, groups
			}

			fullLabels, fullGroups := expand(ds)
			So(fullLabels, ShouldResemble, [][]int{{0, 1, 4}, {1, 4}})
			So(fullGroups, ShouldResemble, []string{"1101100", "1101110"})
			reducedLabels, reducedGroups := expand(reduced)
			So(reducedLabels, ShouldResemble, fullLabels)
			So(reducedGroups, ShouldResemble, fullGroups)
			So(parent.String(), ShouldEqual, "1100000")
		})
	})
}
