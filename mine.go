package main

import (
	"context"
	"fmt"
	"io"

	"ssdps/dp_search/dataset"
	"ssdps/dp_search/param/conf_manager"
	"ssdps/dp_search/report"
	"ssdps/dp_search/search"
	"ssdps/dp_search/stat"
	"ssdps/share/base/logger"
	"ssdps/ssdps_config"
	"ssdps/utils"
)

func loadFilter(p *conf_manager.Params) dataset.Filter {
	return dataset.Filter{MinCasePct: p.MinCasePct, MaxControlPct: p.MaxControlPct, PValue: p.PValue}
}

// searchConfig merged parameters as the core sees them. minCase is the absolute case support
// floor computed by the loader.
func searchConfig(p *conf_manager.Params, minCase int) (search.Config, error) {
	if p.Iteration < 0 {
		return search.Config{}, fmt.Errorf("iteration %v: %w", p.Iteration, utils.ErrParameter)
	}
	cfg := search.DefaultConfig()
	cfg.Thresholds = stat.Thresholds{OR: p.OR, RR: p.RR, ARR: p.ARR}
	cfg.MinCase = minCase
	cfg.MinCaseOut = p.MinCaseOut
	cfg.ItThreshold = int(p.Iteration * ssdps_config.IterationUnit)
	cfg.RatchetOR = !p.NoRatchet
	cfg.Method = search.MethodExhaustive
	if p.Heuristics {
		cfg.Method = search.MethodHeuristic
	}
	return cfg, cfg.Validate()
}

func headerInfo(ds *dataset.Dataset, stats dataset.LoadStats, p *conf_manager.Params, cfg search.Config) report.HeaderInfo {
	return report.HeaderInfo{
		Method:      cfg.Method,
		Rows:        stats.Rows,
		Kept:        stats.Kept,
		NbCase:      ds.NbCase,
		NbControl:   ds.NbControl,
		Thresholds:  cfg.Thresholds,
		PValue:      p.PValue,
		MinCase:     stats.MinCase,
		MaxControl:  stats.MaxControl,
		MinCaseOut:  cfg.MinCaseOut,
		ItThreshold: cfg.ItThreshold,
	}
}

// mineFile runs one command line job: patterns and the report go to out, the counter
// table goes to tables
func mineFile(ctx context.Context, p *conf_manager.Params, out, tables io.Writer) (*report.Summary, error) {
	if p.Input == "" {
		return nil, fmt.Errorf("no input matrix: %w", utils.ErrParameter)
	}
	filter, err := report.NewFilter(p.Filter)
	if err != nil {
		return nil, err
	}
	ds, stats, err := dataset.LoadFile(p.Input, loadFilter(p))
	if err != nil {
		return nil, err
	}
	cfg, err := searchConfig(p, stats.MinCase)
	if err != nil {
		return nil, err
	}

	w := report.NewWriter(out, filter)
	if err := w.Header(headerInfo(ds, stats, p, cfg)); err != nil {
		return nil, err
	}
	res, err := search.Run(ctx, ds, cfg, w)
	if err != nil {
		_ = w.Flush()
		logger.Errorf("mining %s failed, err: %v", p.Input, err)
		return nil, err
	}
	if err := w.Trailer(res); err != nil {
		return nil, err
	}

	summary := &report.Summary{
		Input:         p.Input,
		Method:        cfg.Method,
		NbCase:        ds.NbCase,
		NbControl:     ds.NbControl,
		Rows:          stats.Rows,
		Kept:          stats.Kept,
		Thresholds:    cfg.Thresholds,
		Filter:        filter.String(),
		Result:        res,
		Printed:       w.Printed,
		Filtered:      w.Filtered,
		DistinctItems: w.DistinctItems(),
	}
	if p.Summary != "" {
		if err := report.WriteSummary(p.Summary, summary); err != nil {
			return summary, err
		}
		logger.Infof("summary written to %s", p.Summary)
	}
	report.RenderCounters(tables, summary)
	return summary, nil
}
