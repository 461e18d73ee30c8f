package conf_manager

import (
	"io"

	"ssdps/dp_search/cmd"
	"ssdps/share/base/config"
	"ssdps/ssdps_config"
)

// Params everything the command line can set
type Params struct {
	Input         string
	OR            float64
	RR            float64
	ARR           float64
	MinCasePct    float64
	MaxControlPct float64
	MinCaseOut    int
	PValue        float64
	Heuristics    bool
	// Iteration heuristic budget in units of 1,000,000 case-phase calls
	Iteration   float64
	NoRatchet   bool
	Filter      string
	Summary     string
	Config      string
	Serve       bool
	PrintParams bool
}

// DefaultParams built-in values before config and command line
func DefaultParams() *Params {
	return &Params{
		OR:            ssdps_config.OddsRatioThreshold,
		RR:            ssdps_config.RiskRatioThreshold,
		ARR:           ssdps_config.AbsRiskThreshold,
		MinCasePct:    ssdps_config.MinCasePct,
		MaxControlPct: ssdps_config.MaxControlPct,
		MinCaseOut:    ssdps_config.MinCaseOut,
		PValue:        ssdps_config.PValue,
		Iteration:     1,
		Config:        config.DefaultPath,
	}
}

// Manager binds Params to the command line flags
type Manager struct {
	Params        *Params
	flagContainer *cmd.FlagContainer
}

func NewManager(params *Params) (*Manager, error) {
	m := &Manager{Params: params, flagContainer: cmd.NewFlagContainer()}
	err := m.AddCmdArgs(
		&cmd.Flag{Name: "input", Aliases: []string{"i"}, Usage: "matrix file, first line '<tag> <nb_case> <nb_control>'", FlagValue: cmd.NewStringValue(&params.Input, nil)},
		&cmd.Flag{Name: "or", Usage: "odds ratio threshold (default 1)", FlagValue: cmd.NewFloat64Value(&params.OR, cmd.NonNegative)},
		&cmd.Flag{Name: "rr", Usage: "risk ratio threshold (default 1)", FlagValue: cmd.NewFloat64Value(&params.RR, cmd.NonNegative)},
		&cmd.Flag{Name: "ar", Aliases: []string{"arr"}, Usage: "absolute risk reduction threshold (default 0)", FlagValue: cmd.NewFloat64Value(&params.ARR, nil)},
		&cmd.Flag{Name: "min", Usage: "minimal item support in the 1st class, percent (default 0)", FlagValue: cmd.NewFloat64Value(&params.MinCasePct, cmd.Percent)},
		&cmd.Flag{Name: "max", Usage: "maximal item support in the 2nd class, percent (default 100)", FlagValue: cmd.NewFloat64Value(&params.MaxControlPct, cmd.Percent)},
		&cmd.Flag{Name: "min_out", Usage: "minimal number of individuals in an output pattern (default 0)", FlagValue: cmd.NewIntValue(&params.MinCaseOut, nonNegativeInt)},
		&cmd.Flag{Name: "pval", Usage: "p-value threshold of the item filter, 0 disables it (default 0)", FlagValue: cmd.NewFloat64Value(&params.PValue, cmd.NonNegative)},
		&cmd.Flag{Name: "heuristics", Usage: "mine the largest patterns (default exhaustive mining)", FlagValue: cmd.NewNoArgBoolValue(&params.Heuristics)},
		&cmd.Flag{Name: "iteration", Usage: "heuristic budget x 1,000,000 calls (default 1)", FlagValue: cmd.NewFloat64Value(&params.Iteration, cmd.NonNegative)},
		&cmd.Flag{Name: "no_ratchet", Usage: "keep the odds ratio threshold fixed in heuristic mining", FlagValue: cmd.NewNoArgBoolValue(&params.NoRatchet)},
		&cmd.Flag{Name: "filter", Usage: "output filter expression over a b c d or rr arr lci uci", FlagValue: cmd.NewStringValue(&params.Filter, nil)},
		&cmd.Flag{Name: "summary", Usage: "write a YAML run summary to this file", FlagValue: cmd.NewStringValue(&params.Summary, nil)},
		&cmd.Flag{Name: "config", Usage: "directory holding config.yml (default ./config)", FlagValue: cmd.NewStringValue(&params.Config, nil)},
		&cmd.Flag{Name: "serve", Usage: "run the HTTP mining service", FlagValue: cmd.NewNoArgBoolValue(&params.Serve)},
		&cmd.Flag{Name: "print_params", Usage: "print the parameter table to stderr", FlagValue: cmd.NewNoArgBoolValue(&params.PrintParams)},
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func nonNegativeInt(v int) error {
	return cmd.NonNegative(float64(v))
}

// AddCmdArgs registers extra flags
func (m *Manager) AddCmdArgs(flags ...*cmd.Flag) error {
	return m.flagContainer.AddFlags(flags...)
}

func (m *Manager) ParseFlagsWithArgs(args []string) error {
	return m.flagContainer.Parse(args)
}

// ApplyConfig fills the mining parameters the command line left unset
func (m *Manager) ApplyConfig(mining config.MiningConfig) {
	set := m.flagContainer.IsSet
	p := m.Params
	if !set("or") {
		p.OR = mining.OrThreshold
	}
	if !set("rr") {
		p.RR = mining.RrThreshold
	}
	if !set("ar") {
		p.ARR = mining.ArrThreshold
	}
	if !set("min") {
		p.MinCasePct = mining.MinCase
	}
	if !set("max") {
		p.MaxControlPct = mining.MaxControl
	}
	if !set("min_out") {
		p.MinCaseOut = mining.MinCaseOut
	}
	if !set("pval") {
		p.PValue = mining.PValue
	}
	if !set("iteration") && mining.Iteration > 0 {
		p.Iteration = float64(mining.Iteration)
	}
	if !set("heuristics") {
		p.Heuristics = mining.Method == ssdps_config.Heuristic
	}
	if !set("no_ratchet") {
		p.NoRatchet = !mining.RatchetOR
	}
}

func (m *Manager) FlagsToString() string {
	return m.flagContainer.String()
}

func (m *Manager) Usage() string {
	return m.flagContainer.Usage()
}

// FlagsPrint renders the parameter table
func (m *Manager) FlagsPrint(w io.Writer) {
	cmdTablePrint(w, m.flagContainer)
}
