package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"ssdps/dp_search/dataset"
	"ssdps/dp_search/search"
	"ssdps/dp_search/stat"
	"ssdps/utils"
)

func minePatterns(nbCase, nbControl int, th stat.Thresholds, minCaseOut int, rows ...string) []*search.Pattern {
	ds, _, err := dataset.Build(rows, nbCase, nbControl, dataset.Filter{})
	if err != nil {
		panic(err)
	}
	cfg := search.DefaultConfig()
	cfg.Thresholds = th
	cfg.MinCaseOut = minCaseOut
	c := &search.Collector{}
	if _, err := search.Run(context.Background(), ds, cfg, c); err != nil {
		panic(err)
	}
	return c.Patterns
}

func pureCase() *search.Pattern {
	return minePatterns(4, 2, stat.Thresholds{OR: 1, RR: 1}, 1, "111100", "111111")[0]
}

func infiniteOR() *search.Pattern {
	return minePatterns(4, 4, stat.Thresholds{OR: 1, RR: 0.5}, 0, "11111000", "11111100")[0]
}

func TestFormat(t *testing.T) {
	Convey("number formatting", t, func() {
		So(FormatFloat(100), ShouldEqual, "100")
		So(FormatFloat(100.0/3), ShouldEqual, "33.3333")
		So(FormatFloat(0.75), ShouldEqual, "0.75")
		So(FormatFloat(1e6), ShouldEqual, "1e+06")
		So(FormatFloat(math.Inf(1)), ShouldEqual, "inf")
		So(FormatFloat(math.NaN()), ShouldEqual, "nan")
	})

	Convey("pattern lines", t, func() {
		So(FormatPattern(pureCase()), ShouldEqual, "0 1 (100 : 0)")
		So(FormatPattern(infiniteOR()), ShouldEqual, "0 1 (100 : 25 : inf : 4 : 0.75 : inf-inf)")
	})

	Convey("header and trailer", t, func() {
		buf := &bytes.Buffer{}
		err := WriteHeader(buf, HeaderInfo{
			Method:      search.MethodHeuristic,
			Rows:        10,
			Kept:        8,
			NbCase:      4,
			NbControl:   4,
			Thresholds:  stat.Thresholds{OR: 2, RR: 1.5, ARR: 0.1},
			PValue:      0.05,
			MinCase:     2,
			MaxControl:  4,
			MinCaseOut:  1,
			ItThreshold: 1000000,
		})
		So(err, ShouldBeNil)
		lines := strings.Split(buf.String(), "\n")
		So(lines[0], ShouldEqual, "#Heuristic mining statistically significant discriminative patterns")
		So(lines, ShouldContain, "#size of data: 10 x 8")
		So(lines, ShouldContain, "#size of reduced data: 8 x 8")
		So(lines, ShouldContain, "#risk thresholds (OR, RR, AR): 2, 1.5, 0.1")
		So(lines, ShouldContain, "#p_value_threshold: 0.05")
		So(lines, ShouldContain, "#min case support: 50%")
		So(lines, ShouldContain, "#max control support: 100%")
		So(lines, ShouldContain, "#min case output: 25%")
		So(lines, ShouldContain, "#stopping steps: 1000000")
		So(lines, ShouldContain, "Output:")

		buf.Reset()
		So(WriteHeader(buf, HeaderInfo{Method: search.MethodExhaustive, NbCase: 1, NbControl: 1}), ShouldBeNil)
		So(buf.String(), ShouldStartWith, "#Exhaustive mining")
		So(buf.String(), ShouldNotContainSubstring, "p_value_threshold")
		So(buf.String(), ShouldNotContainSubstring, "stopping steps")

		buf.Reset()
		So(WriteTrailer(buf, &search.Result{Patterns: 3, Elapsed: 1500 * time.Millisecond}), ShouldBeNil)
		So(buf.String(), ShouldEqual, "\n#nb_patterns 3\n#running time 1.5 s\n")
	})
}

func TestFilter(t *testing.T) {
	Convey("output filter", t, func() {
		p := infiniteOR()

		f, err := NewFilter("or > 3 && a >= 4")
		So(err, ShouldBeNil)
		ok, err := f.Match(p)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)

		f, err = NewFilter("c == 0")
		So(err, ShouldBeNil)
		ok, err = f.Match(p)
		So(err, ShouldBeNil)
		So(ok, ShouldBeFalse)

		f, err = NewFilter("")
		So(err, ShouldBeNil)
		So(f, ShouldBeNil)
		ok, err = f.Match(p)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)

		_, err = NewFilter("odds > 1")
		So(errors.Is(err, utils.ErrFilterExpr), ShouldBeTrue)
		_, err = NewFilter("a >")
		So(errors.Is(err, utils.ErrFilterExpr), ShouldBeTrue)

		f, err = NewFilter("a + 1")
		So(err, ShouldBeNil)
		_, err = f.Match(p)
		So(errors.Is(err, utils.ErrFilterExpr), ShouldBeTrue)
	})
}

func TestWriter(t *testing.T) {
	Convey("streaming writer", t, func() {
		buf := &bytes.Buffer{}
		f, err := NewFilter("c > 0")
		So(err, ShouldBeNil)
		w := NewWriter(buf, f)

		So(w.Emit(pureCase()), ShouldBeNil)
		So(w.Emit(infiniteOR()), ShouldBeNil)
		So(w.Trailer(&search.Result{Patterns: 2}), ShouldBeNil)

		So(w.Printed, ShouldEqual, 1)
		So(w.Filtered, ShouldEqual, 1)
		So(w.DistinctItems(), ShouldResemble, []int{0, 1})
		So(buf.String(), ShouldStartWith, "0 1 (100 : 25 : inf : 4 : 0.75 : inf-inf)\n")
		So(buf.String(), ShouldContainSubstring, "#nb_patterns 2")
	})
}

func TestSummary(t *testing.T) {
	Convey("yaml summary and counter table", t, func() {
		s := &Summary{
			Input:      "matrix.txt",
			Method:     search.MethodHeuristic,
			NbCase:     4,
			NbControl:  4,
			Thresholds: stat.Thresholds{OR: 1, RR: 0.5},
			Result: &search.Result{
				Method:      search.MethodHeuristic,
				Patterns:    1,
				Calls:       4,
				ORThreshold: math.Inf(1),
				Elapsed:     2 * time.Second,
			},
			Printed:       1,
			DistinctItems: []int{0, 1},
		}
		path := filepath.Join(t.TempDir(), "summary.yml")
		So(WriteSummary(path, s), ShouldBeNil)

		loaded, err := ReadSummary(path)
		So(err, ShouldBeNil)
		So(loaded.Input, ShouldEqual, "matrix.txt")
		So(loaded.Result.Calls, ShouldEqual, 4)
		So(math.IsInf(loaded.Result.ORThreshold, 1), ShouldBeTrue)
		So(loaded.Result.Elapsed, ShouldEqual, 2*time.Second)
		So(loaded.DistinctItems, ShouldResemble, []int{0, 1})

		err = WriteSummary(filepath.Join(t.TempDir(), "missing", "summary.yml"), s)
		So(errors.Is(err, utils.ErrWriteSummary), ShouldBeTrue)

		buf := &bytes.Buffer{}
		RenderCounters(buf, s)
		So(buf.String(), ShouldContainSubstring, "SEARCH COUNTERS")
		So(buf.String(), ShouldContainSubstring, "case-phase calls")
	})
}

func TestView(t *testing.T) {
	Convey("json view", t, func() {
		data, err := json.Marshal(View(infiniteOR()))
		So(err, ShouldBeNil)
		m := map[string]interface{}{}
		So(json.Unmarshal(data, &m), ShouldBeNil)
		So(m["or"], ShouldEqual, "inf")
		So(m["rr"], ShouldEqual, 4.0)
		So(m["individuals"], ShouldResemble, []interface{}{0.0, 1.0, 2.0, 3.0, 4.0})

		data, err = json.Marshal(View(pureCase()))
		So(err, ShouldBeNil)
		m = map[string]interface{}{}
		So(json.Unmarshal(data, &m), ShouldBeNil)
		_, hasOR := m["or"]
		So(hasOR, ShouldBeFalse)
		So(m["case_pct"], ShouldEqual, 100.0)
	})
}
