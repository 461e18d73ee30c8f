package dataset

import (
	"ssdps/dp_search/stat"
	"ssdps/dp_search/util/bitset"
)

// Item one row of the matrix. ID is positional and changes under projection,
// Label is the row number in the input file and never changes.
type Item struct {
	ID      int
	Label   int
	Support *bitset.Vector // individuals carrying the item
}

// Dataset transposed case/control matrix: one support vector per item
type Dataset struct {
	Items       []Item
	NbCase      int
	NbControl   int
	NbSample    int
	CaseMask    *bitset.Vector // ones on [0, NbCase)
	ControlMask *bitset.Vector // ones on [NbCase, NbSample)
}

// New creates an empty dataset with its class masks
func New(nbCase, nbControl int) *Dataset {
	nbSample := nbCase + nbControl
	caseMask := bitset.New(nbSample)
	caseMask.FillWithOnes(0, nbCase)
	controlMask := bitset.New(nbSample)
	controlMask.FillWithOnes(nbCase, nbControl)
	return &Dataset{
		NbCase:      nbCase,
		NbControl:   nbControl,
		NbSample:    nbSample,
		CaseMask:    caseMask,
		ControlMask: controlMask,
	}
}

// AddItem appends an item with the next positional id
func (d *Dataset) AddItem(label int, support *bitset.Vector) {
	d.Items = append(d.Items, Item{ID: len(d.Items), Label: label, Support: support})
}

// Len number of items
func (d *Dataset) Len() int {
	return len(d.Items)
}

// NewGroup an empty candidate group sized for this dataset
func (d *Dataset) NewGroup() *bitset.Vector {
	return bitset.New(d.NbSample)
}

// Contingency counts the cases and controls of a group
func (d *Dataset) Contingency(group *bitset.Vector) stat.Table {
	cases := group.Clone()
	cases.Intersect(d.CaseMask)
	controls := d.ControlPart(group)
	return stat.NewTable(cases.Count(), controls.Count(), d.NbCase, d.NbControl)
}

// ControlPart the controls of a group
func (d *Dataset) ControlPart(group *bitset.Vector) *bitset.Vector {
	res := group.Clone()
	res.AndNot(d.CaseMask)
	return res
}

// Labels maps positional item ids to their labels
func (d *Dataset) Labels(tid []int) []int {
	labels := make([]int, len(tid))
	for i, id := range tid {
		labels[i] = d.Items[id].Label
	}
	return labels
}
