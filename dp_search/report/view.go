package report

import (
	"math"
	"strconv"

	"ssdps/dp_search/search"
)

// Float JSON number that encodes infinities and NaN as strings
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte(strconv.Quote(FormatFloat(v))), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// PatternView JSON form of a pattern
type PatternView struct {
	Line        string `json:"line"`
	Labels      []int  `json:"labels"`
	Individuals []int  `json:"individuals"`
	A           int    `json:"a"`
	B           int    `json:"b"`
	C           int    `json:"c"`
	D           int    `json:"d"`
	CasePct     Float  `json:"case_pct"`
	ControlPct  Float  `json:"control_pct"`
	OR          *Float `json:"or,omitempty"`
	RR          *Float `json:"rr,omitempty"`
	ARR         *Float `json:"arr,omitempty"`
	LCI         *Float `json:"lci,omitempty"`
	UCI         *Float `json:"uci,omitempty"`
	PValue      Float  `json:"p_value"`
	Chi2        Float  `json:"chi2"`
	InfoGain    Float  `json:"info_gain"`
}

func ptr(f float64) *Float {
	v := Float(f)
	return &v
}

// View converts a pattern for JSON output. Ratio fields are left out for pure-case patterns.
func View(p *search.Pattern) PatternView {
	s := p.Stats
	individuals := make([]int, 0, p.Individuals.Size())
	p.Individuals.Visit(func(n int) bool {
		individuals = append(individuals, n)
		return false
	})
	v := PatternView{
		Line:        FormatPattern(p),
		Labels:      p.Labels,
		Individuals: individuals,
		A:           p.Table.A,
		B:           p.Table.B,
		C:           p.Table.C,
		D:           p.Table.D,
		CasePct:     Float(s.CasePct),
		ControlPct:  Float(s.ControlPct),
		PValue:      Float(s.PValue),
		Chi2:        Float(s.Chi2),
		InfoGain:    Float(s.InfoGain),
	}
	if s.HasControls {
		v.OR, v.RR, v.ARR = ptr(s.OR), ptr(s.RR), ptr(s.ARR)
		v.LCI, v.UCI = ptr(s.LCI), ptr(s.UCI)
	}
	return v
}
