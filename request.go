package main

import (
	"fmt"
	"path/filepath"

	"ssdps/dp_search/dataset"
	"ssdps/dp_search/param/conf_manager"
	"ssdps/share/base/config"
	"ssdps/ssdps_config"
	"ssdps/utils"
)

// MineRequest body of POST /ssdps. The matrix is either a path relative to the data
// directory or inline rows with their class sizes. Unset parameters take the mining_config
// values.
type MineRequest struct {
	Path      string   `json:"path"`
	NbCase    int      `json:"nb_case"`
	NbControl int      `json:"nb_control"`
	Rows      []string `json:"rows"`

	Method     string   `json:"method"`
	OR         *float64 `json:"or"`
	RR         *float64 `json:"rr"`
	ARR        *float64 `json:"ar"`
	MinCase    *float64 `json:"min"`
	MaxControl *float64 `json:"max"`
	MinCaseOut *int     `json:"min_out"`
	PValue     *float64 `json:"pval"`
	Iteration  *float64 `json:"iteration"`
	RatchetOR  *bool    `json:"ratchet_or"`
	Filter     string   `json:"filter"`
	// Limit caps the patterns returned, 0 returns all
	Limit int `json:"limit"`
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// params merges the request over the mining config
func (r *MineRequest) params(mining config.MiningConfig) (*conf_manager.Params, error) {
	if (r.Path == "") == (len(r.Rows) == 0) {
		return nil, fmt.Errorf("exactly one of path and rows must be given: %w", utils.ErrParameter)
	}
	if len(r.Rows) > ssdps_config.MaxRequestRows {
		return nil, fmt.Errorf("%d rows, at most %d accepted: %w", len(r.Rows), ssdps_config.MaxRequestRows, utils.ErrParameter)
	}
	if len(r.Rows) > 0 && (r.NbCase < 0 || r.NbControl < 0 || r.NbCase+r.NbControl == 0) {
		return nil, fmt.Errorf("class sizes %d/%d: %w", r.NbCase, r.NbControl, utils.ErrParameter)
	}
	if r.Limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", r.Limit, utils.ErrParameter)
	}

	p := &conf_manager.Params{
		Input:         r.Path,
		OR:            mining.OrThreshold,
		RR:            mining.RrThreshold,
		ARR:           mining.ArrThreshold,
		MinCasePct:    mining.MinCase,
		MaxControlPct: mining.MaxControl,
		MinCaseOut:    mining.MinCaseOut,
		PValue:        mining.PValue,
		Iteration:     float64(mining.Iteration),
		Heuristics:    mining.Method == ssdps_config.Heuristic,
		NoRatchet:     !mining.RatchetOR,
		Filter:        r.Filter,
	}
	switch r.Method {
	case "":
	case ssdps_config.Exhaustive:
		p.Heuristics = false
	case ssdps_config.Heuristic:
		p.Heuristics = true
	default:
		return nil, fmt.Errorf("method %q: %w", r.Method, utils.ErrUnknownMethod)
	}
	setIf(&p.OR, r.OR)
	setIf(&p.RR, r.RR)
	setIf(&p.ARR, r.ARR)
	setIf(&p.MinCasePct, r.MinCase)
	setIf(&p.MaxControlPct, r.MaxControl)
	setIf(&p.MinCaseOut, r.MinCaseOut)
	setIf(&p.PValue, r.PValue)
	setIf(&p.Iteration, r.Iteration)
	if r.RatchetOR != nil {
		p.NoRatchet = !*r.RatchetOR
	}

	for name, pct := range map[string]float64{"min": p.MinCasePct, "max": p.MaxControlPct} {
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("%s %v not a percentage: %w", name, pct, utils.ErrParameter)
		}
	}
	if p.MinCaseOut < 0 {
		return nil, fmt.Errorf("min_out %d: %w", p.MinCaseOut, utils.ErrParameter)
	}
	return p, nil
}

// dataPath resolves name below dataDir. Absolute names and names climbing out of dataDir
// are refused.
func dataPath(dataDir, name string) (string, error) {
	if dataDir == "" {
		return "", fmt.Errorf("no data directory configured: %w", utils.ErrDataPath)
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%q: %w", name, utils.ErrDataPath)
	}
	return filepath.Join(dataDir, name), nil
}

// load reads the matrix named or carried by the request
func (r *MineRequest) load(p *conf_manager.Params, dataDir string) (*dataset.Dataset, dataset.LoadStats, error) {
	if r.Path != "" {
		path, err := dataPath(dataDir, r.Path)
		if err != nil {
			return nil, dataset.LoadStats{}, err
		}
		return dataset.LoadFile(path, loadFilter(p))
	}
	return dataset.Build(r.Rows, r.NbCase, r.NbControl, loadFilter(p))
}
