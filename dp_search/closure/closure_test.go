package closure

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ssdps/dp_search/dataset"
	"ssdps/dp_search/util/bitset"
)

func build(nbCase, nbControl int, rows ...string) *dataset.Dataset {
	ds, _, err := dataset.Build(rows, nbCase, nbControl, dataset.Filter{})
	if err != nil {
		panic(err)
	}
	return ds
}

func group(ds *dataset.Dataset, ids ...int) *bitset.Vector {
	g := ds.NewGroup()
	for _, id := range ids {
		g.SetBit(id, true)
	}
	return g
}

func TestClosure(t *testing.T) {
	Convey("closure over a small matrix", t, func() {
		ds := build(4, 2, "111100", "110011", "111011")

		Convey("covering itemset", func() {
			So(Covering(group(ds, 0, 1), ds), ShouldResemble, []int{0, 1, 2})
			So(Covering(group(ds, 0, 1, 4), ds), ShouldResemble, []int{1, 2})
			So(Covering(group(ds, 3, 4), ds), ShouldBeEmpty)
		})

		Convey("modes", func() {
			tid := []int{1, 2}
			So(Closure(tid, ds, Full).String(), ShouldEqual, "110011")
			So(Closure(tid, ds, CaseOnly).String(), ShouldEqual, "110000")
			So(Closure(tid, ds, ControlOnly).String(), ShouldEqual, "000011")
			So(Full.String(), ShouldEqual, "full")
		})

		Convey("closure is idempotent", func() {
			for _, g := range []*bitset.Vector{group(ds, 0), group(ds, 0, 1), group(ds, 0, 5), group(ds, 2)} {
				tid := Covering(g, ds)
				closed := Closure(tid, ds, Full)
				So(g.IsSubsetOf(closed), ShouldBeTrue)
				again := Closure(Covering(closed, ds), ds, Full)
				So(again.Equal(closed), ShouldBeTrue)
			}
		})

		Convey("projection keeps labels and closures", func() {
			tid := []int{1, 2}
			reduced := Project(tid, ds)
			So(reduced.Len(), ShouldEqual, 2)
			So(reduced.Items[0].ID, ShouldEqual, 0)
			So(reduced.Items[0].Label, ShouldEqual, 1)
			So(reduced.Items[1].Label, ShouldEqual, 2)
			So(reduced.NbCase, ShouldEqual, ds.NbCase)
			So(reduced.CaseMask.Equal(ds.CaseMask), ShouldBeTrue)
			So(Closure([]int{0, 1}, reduced, Full).Equal(Closure(tid, ds, Full)), ShouldBeTrue)

			// a group covered only by projected items has the same covering labels
			g := group(ds, 0, 4)
			So(reduced.Labels(Covering(g, reduced)), ShouldResemble, ds.Labels(Covering(g, ds)))
		})
	})
}

func TestPredictExpand(t *testing.T) {
	Convey("odds ratio reachability estimate", t, func() {
		ds := build(2, 4, "101111", "111111", "110000")

		So(PredictExpand([]int{0}, 3, ds), ShouldBeFalse)
		So(PredictExpand([]int{1}, 3, ds), ShouldBeTrue)
		// no controls left
		So(PredictExpand([]int{2}, 3, ds), ShouldBeTrue)
		// non-positive denominator
		So(PredictExpand([]int{0}, 0, ds), ShouldBeTrue)
		So(PredictExpand(nil, 3, ds), ShouldBeFalse)
	})
}
