package search

import "time"

// Result counters of a finished run
type Result struct {
	Method   Method `json:"method" yaml:"method"`
	Patterns int    `json:"patterns" yaml:"patterns"`
	// Calls case-phase calls over the whole run
	Calls             int  `json:"calls" yaml:"calls"`
	CasePrunes        int  `json:"case_prunes" yaml:"case_prunes"`
	ControlPrunes     int  `json:"control_prunes" yaml:"control_prunes"`
	ControlExpansions int  `json:"control_expansions" yaml:"control_expansions"`
	BudgetExhausted   bool `json:"budget_exhausted" yaml:"budget_exhausted"`
	// ORThreshold odds ratio threshold at the end of the run, raised by the heuristic ratchet
	ORThreshold float64       `json:"or_threshold" yaml:"or_threshold"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
}
