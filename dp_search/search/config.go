package search

import (
	"fmt"
	"strings"

	"ssdps/dp_search/stat"
	"ssdps/ssdps_config"
	"ssdps/utils"
)

// Method search strategy
type Method string

const (
	MethodExhaustive Method = ssdps_config.Exhaustive
	MethodHeuristic  Method = ssdps_config.Heuristic
)

// ParseMethod accepts the method names, case-insensitively
func ParseMethod(name string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(name))) {
	case MethodExhaustive, "":
		return MethodExhaustive, nil
	case MethodHeuristic:
		return MethodHeuristic, nil
	}
	return "", fmt.Errorf("method %q: %w", name, utils.ErrUnknownMethod)
}

// Config parameters of one mining run
type Config struct {
	Thresholds stat.Thresholds
	// MinCase lowest case id used as a top-level pivot, the absolute case support floor
	MinCase int
	// MinCaseOut minimal number of individuals in an emitted group
	MinCaseOut int
	// ItThreshold heuristic budget: case-phase calls allowed since the last emission.
	// Non-positive means unbounded.
	ItThreshold int
	Method      Method
	// RatchetOR raises the odds ratio threshold after each heuristic emission
	RatchetOR bool
}

// DefaultConfig thresholds and budget used when nothing else is given
func DefaultConfig() Config {
	return Config{
		Thresholds: stat.Thresholds{
			OR:  ssdps_config.OddsRatioThreshold,
			RR:  ssdps_config.RiskRatioThreshold,
			ARR: ssdps_config.AbsRiskThreshold,
		},
		MinCaseOut:  ssdps_config.MinCaseOut,
		ItThreshold: ssdps_config.ItThreshold,
		Method:      ssdps_config.Method,
		RatchetOR:   ssdps_config.RatchetOR,
	}
}

// Validate rejects parameters no search can run with
func (c Config) Validate() error {
	if c.Method != MethodExhaustive && c.Method != MethodHeuristic {
		return fmt.Errorf("method %q: %w", c.Method, utils.ErrUnknownMethod)
	}
	if c.MinCase < 0 {
		return fmt.Errorf("min case %d: %w", c.MinCase, utils.ErrParameter)
	}
	if c.MinCaseOut < 0 {
		return fmt.Errorf("min case out %d: %w", c.MinCaseOut, utils.ErrParameter)
	}
	if c.Thresholds.OR < 0 || c.Thresholds.RR < 0 {
		return fmt.Errorf("negative ratio threshold %+v: %w", c.Thresholds, utils.ErrParameter)
	}
	return nil
}
