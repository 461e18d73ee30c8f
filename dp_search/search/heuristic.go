package search

import (
	"ssdps/dp_search/closure"
	"ssdps/dp_search/dataset"
	"ssdps/dp_search/util/bitset"
)

// heuristic walks pivots from the largest case id down, favouring large groups first
func (s *searcher) heuristic(ds *dataset.Dataset) error {
	for e := ds.NbCase - 1; e >= s.cfg.MinCase; e-- {
		if err := s.expandCaseHeu(ds.NewGroup(), e, ds); err != nil {
			return err
		}
	}
	return nil
}

func (s *searcher) expandCaseHeu(p *bitset.Vector, e int, ds *dataset.Dataset) error {
	if err := s.enter(); err != nil {
		return err
	}
	p = extend(p, e)
	tid := closure.Covering(p, ds)
	if len(tid) <= 1 {
		return nil
	}
	if !closure.PredictExpand(tid, s.th.OR, ds) {
		s.res.CasePrunes++
		return nil
	}

	// p is covered by every item of tid, so its case closure contains p
	ext := bitset.Difference(closure.Closure(tid, ds, closure.CaseOnly), p)
	if !ext.IsEmpty() {
		if ext.Max() >= e {
			s.res.CasePrunes++
			return nil
		}
		p.Union(ext)
	}

	reduced := closure.Project(tid, ds)
	children := uncovered(ds.CaseMask, p, e)
	for i := len(children) - 1; i >= 0; i-- {
		if err := s.expandCaseHeu(p, children[i], reduced); err != nil {
			return err
		}
	}

	if p.Count() >= s.cfg.MinCaseOut {
		return s.closeControlHeu(p, reduced)
	}
	return nil
}

// closeControlHeu adds the control closure of p in one step and emits the result
func (s *searcher) closeControlHeu(p *bitset.Vector, ds *dataset.Dataset) error {
	tid := closure.Covering(p, ds)
	if len(tid) == 0 {
		return nil
	}
	ext := closure.Closure(tid, ds, closure.ControlOnly)
	ext.AndNot(p)
	if ext.IsEmpty() {
		if s.admissible(p, ds) {
			return s.emit(p, tid, ds)
		}
		return nil
	}

	q := bitset.Union(p, ext)
	if closure.Closure(tid, ds, closure.Full).Equal(q) && s.admissible(q, ds) {
		return s.emit(q, tid, ds)
	}
	return nil
}
