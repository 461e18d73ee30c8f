package report

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"ssdps/dp_search/search"
	"ssdps/dp_search/stat"
	"ssdps/utils"
)

// Summary machine-readable record of one run
type Summary struct {
	Input         string          `yaml:"input"`
	Method        search.Method   `yaml:"method"`
	NbCase        int             `yaml:"nb_case"`
	NbControl     int             `yaml:"nb_control"`
	Rows          int             `yaml:"rows"`
	Kept          int             `yaml:"kept"`
	Thresholds    stat.Thresholds `yaml:"thresholds"`
	Filter        string          `yaml:"filter,omitempty"`
	Result        *search.Result  `yaml:"result"`
	Printed       int             `yaml:"printed"`
	Filtered      int             `yaml:"filtered"`
	DistinctItems []int           `yaml:"distinct_items,flow"`
}

// WriteSummary stores s as YAML at path
func WriteSummary(path string, s *Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%v: %w", err, utils.ErrWriteSummary)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, utils.ErrWriteSummary)
	}
	return nil
}

// ReadSummary loads a summary written by WriteSummary
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Summary{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// RenderCounters prints the run counters as a table
func RenderCounters(w io.Writer, s *Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("SEARCH COUNTERS")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Counter", AlignHeader: text.AlignCenter, WidthMin: 20},
		{Name: "Value", Align: text.AlignRight, AlignHeader: text.AlignCenter, WidthMin: 12},
	})
	t.AppendHeader(table.Row{"Counter", "Value"})
	res := s.Result
	t.AppendRows([]table.Row{
		{"method", res.Method},
		{"patterns", res.Patterns},
		{"printed", s.Printed},
		{"filtered", s.Filtered},
		{"distinct items", len(s.DistinctItems)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"case-phase calls", res.Calls},
		{"case prunes", res.CasePrunes},
		{"control prunes", res.ControlPrunes},
		{"control expansions", res.ControlExpansions},
		{"budget exhausted", res.BudgetExhausted},
		{"final OR threshold", FormatFloat(res.ORThreshold)},
		{"elapsed", res.Elapsed},
	})
	t.Render()
}
