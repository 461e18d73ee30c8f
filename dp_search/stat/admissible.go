package stat

// Thresholds effect-size floors a pattern with controls must reach
type Thresholds struct {
	OR  float64 `json:"or" yaml:"or"`
	RR  float64 `json:"rr" yaml:"rr"`
	ARR float64 `json:"arr" yaml:"arr"`
}

// Admissible decides whether a group may be emitted.
// A group touching controls needs OR, RR, ARR and the lower bounds of OR and RR above
// the thresholds; a pure-case group only needs more than minCaseOut cases.
func Admissible(t Table, th Thresholds, minCaseOut int) bool {
	if t.C == 0 {
		return t.A > minCaseOut
	}
	odd := OddsRatio(t.A, t.B, t.C, t.D)
	rr := RiskRatio(t.A, t.B, t.C, t.D)
	arr := RiskDifference(t.A, t.B, t.C, t.D)
	lciOR := LCI(odd, t.A, t.B, t.C, t.D)
	lciRR := RLCI(rr, t.A, t.B, t.C, t.D)
	return odd >= th.OR &&
		rr >= th.RR &&
		arr >= th.ARR &&
		lciOR >= th.OR &&
		lciRR >= th.RR
}

// Stats reported scores of a group. The ratio fields are only meaningful when
// HasControls is set.
type Stats struct {
	CasePct     float64 `json:"case_pct" yaml:"case_pct"`
	ControlPct  float64 `json:"control_pct" yaml:"control_pct"`
	HasControls bool    `json:"has_controls" yaml:"has_controls"`
	OR          float64 `json:"or" yaml:"or"`
	RR          float64 `json:"rr" yaml:"rr"`
	ARR         float64 `json:"arr" yaml:"arr"`
	LCI         float64 `json:"lci" yaml:"lci"`
	UCI         float64 `json:"uci" yaml:"uci"`
	PValue      float64 `json:"p_value" yaml:"p_value"`
	Chi2        float64 `json:"chi2" yaml:"chi2"`
	InfoGain    float64 `json:"info_gain" yaml:"info_gain"`
}

// Describe computes the reported statistics of a table
func Describe(t Table) Stats {
	s := Stats{
		CasePct:  percent(t.A, t.A+t.B),
		PValue:   PValue(t.A, t.B, t.C, t.D),
		Chi2:     Chi2(t.A, t.B, t.C, t.D),
		InfoGain: InfoGain(t.A, t.B, t.C, t.D),
	}
	s.ControlPct = percent(t.C, t.C+t.D)
	if t.C == 0 {
		return s
	}
	s.HasControls = true
	s.OR = OddsRatio(t.A, t.B, t.C, t.D)
	s.RR = RiskRatio(t.A, t.B, t.C, t.D)
	s.ARR = RiskDifference(t.A, t.B, t.C, t.D)
	s.LCI = LCI(s.OR, t.A, t.B, t.C, t.D)
	s.UCI = UCI(s.OR, t.A, t.B, t.C, t.D)
	return s
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
