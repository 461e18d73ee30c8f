package closure

import (
	"ssdps/dp_search/dataset"
	"ssdps/dp_search/util/bitset"
)

// Mode which class of individuals a closure keeps
type Mode int

const (
	CaseOnly Mode = iota
	ControlOnly
	Full
)

func (m Mode) String() string {
	switch m {
	case CaseOnly:
		return "case"
	case ControlOnly:
		return "control"
	default:
		return "full"
	}
}

// Covering lists, in id order, the items whose support contains every individual of group
func Covering(group *bitset.Vector, ds *dataset.Dataset) []int {
	tid := make([]int, 0, ds.Len())
	for _, item := range ds.Items {
		if group.IsSubsetOf(item.Support) {
			tid = append(tid, item.ID)
		}
	}
	return tid
}

// Closure intersects the supports of the items in tid, restricted to the class of mode.
// tid must not be empty.
func Closure(tid []int, ds *dataset.Dataset, mode Mode) *bitset.Vector {
	res := ds.Items[tid[0]].Support.Clone()
	for _, id := range tid[1:] {
		res.Intersect(ds.Items[id].Support)
	}
	switch mode {
	case CaseOnly:
		res.Intersect(ds.CaseMask)
	case ControlOnly:
		res.Intersect(ds.ControlMask)
	}
	return res
}

// Project builds the reduced dataset of the items in tid. Ids are renumbered from zero,
// labels and supports are shared with ds.
func Project(tid []int, ds *dataset.Dataset) *dataset.Dataset {
	reduced := &dataset.Dataset{
		Items:       make([]dataset.Item, 0, len(tid)),
		NbCase:      ds.NbCase,
		NbControl:   ds.NbControl,
		NbSample:    ds.NbSample,
		CaseMask:    ds.CaseMask,
		ControlMask: ds.ControlMask,
	}
	for _, id := range tid {
		reduced.AddItem(ds.Items[id].Label, ds.Items[id].Support)
	}
	return reduced
}

// PredictExpand estimates whether the branch of tid can still reach an odds ratio of
// threshold. With nCase cases and nCtrl controls in the full closure, the branch is kept
// when nCase >= threshold*nCtrl*nbCase / (nCtrl*(threshold-1) + nbControl).
func PredictExpand(tid []int, threshold float64, ds *dataset.Dataset) bool {
	if len(tid) == 0 {
		return false
	}
	closed := Closure(tid, ds, Full)
	table := ds.Contingency(closed)
	nCtrl := float64(table.C)

	den := nCtrl*(threshold-1) + float64(ds.NbControl)
	if den <= 0 {
		return true
	}
	need := int(threshold * nCtrl * float64(ds.NbCase) / den)
	return table.A >= need
}
