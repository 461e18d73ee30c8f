package search

import (
	"ssdps/dp_search/closure"
	"ssdps/dp_search/dataset"
	"ssdps/dp_search/util/bitset"
)

func (s *searcher) exhaustive(ds *dataset.Dataset) error {
	for e := s.cfg.MinCase; e < ds.NbCase; e++ {
		if err := s.expandCaseExh(ds.NewGroup(), e, ds); err != nil {
			return err
		}
	}
	return nil
}

// expandCaseExh grows a case-only group with case e and closes it on the cases
func (s *searcher) expandCaseExh(p *bitset.Vector, e int, ds *dataset.Dataset) error {
	if err := s.enter(); err != nil {
		return err
	}
	p = extend(p, e)
	tid := closure.Covering(p, ds)
	if len(tid) <= 1 {
		return nil
	}

	// p is covered by every item of tid, so its case closure contains p
	ext := bitset.Difference(closure.Closure(tid, ds, closure.CaseOnly), p)
	var children []int
	if ext.IsEmpty() {
		children = uncovered(ds.CaseMask, p, p.Min())
	} else {
		if ext.Max() >= e {
			s.res.CasePrunes++
			return nil
		}
		p.Union(ext)
		// cover(p ∪ ext) == cover(p)
		children = uncovered(ds.CaseMask, p, e)
	}

	reduced := closure.Project(tid, ds)
	for _, id := range children {
		if err := s.expandCaseExh(p, id, reduced); err != nil {
			return err
		}
	}

	if closure.Closure(tid, ds, closure.ControlOnly).IsEmpty() &&
		s.admissible(p, ds) && p.Count() >= s.cfg.MinCaseOut {
		if err := s.emit(p, tid, ds); err != nil {
			return err
		}
	}

	for i := ds.NbCase; i < ds.NbSample; i++ {
		if err := s.expandControlExh(p, i, reduced); err != nil {
			return err
		}
	}
	return nil
}

// expandControlExh adds control e to an admissible group and closes it on the controls
func (s *searcher) expandControlExh(p *bitset.Vector, e int, ds *dataset.Dataset) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	p = extend(p, e)
	tid := closure.Covering(p, ds)
	if len(tid) <= 1 {
		return nil
	}
	if !s.admissible(p, ds) {
		s.res.ControlPrunes++
		return nil
	}
	s.res.ControlExpansions++

	ext := closure.Closure(tid, ds, closure.ControlOnly)
	ext.AndNot(p)
	if !ext.IsEmpty() {
		if ext.Max() >= e {
			return nil
		}
		p.Union(ext)
		if !s.admissible(p, ds) {
			return nil
		}
	}
	if !closure.Closure(tid, ds, closure.Full).Equal(p) {
		return nil
	}

	if p.Count() >= s.cfg.MinCaseOut {
		if err := s.emit(p, tid, ds); err != nil {
			return err
		}
	}

	reduced := closure.Project(tid, ds)
	for _, id := range uncovered(ds.ControlMask, p, e) {
		if err := s.expandControlExh(p, id, reduced); err != nil {
			return err
		}
	}
	return nil
}
