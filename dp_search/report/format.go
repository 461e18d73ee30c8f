package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"ssdps/dp_search/search"
	"ssdps/dp_search/stat"
)

// FormatFloat prints with 6 significant digits, infinities as inf
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// FormatScores the parenthesised part of a pattern line
func FormatScores(s stat.Stats) string {
	if !s.HasControls {
		return FormatFloat(s.CasePct) + " : " + FormatFloat(s.ControlPct)
	}
	return strings.Join([]string{
		FormatFloat(s.CasePct),
		FormatFloat(s.ControlPct),
		FormatFloat(s.OR),
		FormatFloat(s.RR),
		FormatFloat(s.ARR),
		FormatFloat(s.LCI) + "-" + FormatFloat(s.UCI),
	}, " : ")
}

// FormatPattern "l1 l2 ... (scores)"
func FormatPattern(p *search.Pattern) string {
	b := strings.Builder{}
	for _, label := range p.Labels {
		b.WriteString(strconv.Itoa(label))
		b.WriteByte(' ')
	}
	b.WriteByte('(')
	b.WriteString(FormatScores(p.Stats))
	b.WriteByte(')')
	return b.String()
}

// HeaderInfo what the report header describes
type HeaderInfo struct {
	Method      search.Method
	Rows        int // items read
	Kept        int // items after filtering
	NbCase      int
	NbControl   int
	Thresholds  stat.Thresholds
	PValue      float64
	MinCase     int
	MaxControl  int
	MinCaseOut  int
	ItThreshold int
}

func ratioPct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

// WriteHeader prints the comment block preceding the patterns
func WriteHeader(w io.Writer, h HeaderInfo) error {
	nbSample := h.NbCase + h.NbControl
	title := "#Exhaustive mining statistically significant discriminative patterns"
	if h.Method == search.MethodHeuristic {
		title = "#Heuristic mining statistically significant discriminative patterns"
	}
	lines := []string{
		title,
		fmt.Sprintf("#size of data: %d x %d", h.Rows, nbSample),
		fmt.Sprintf("#size of reduced data: %d x %d", h.Kept, nbSample),
		fmt.Sprintf("#risk thresholds (OR, RR, AR): %s, %s, %s",
			FormatFloat(h.Thresholds.OR), FormatFloat(h.Thresholds.RR), FormatFloat(h.Thresholds.ARR)),
	}
	if h.PValue != 0 {
		lines = append(lines, "#p_value_threshold: "+FormatFloat(h.PValue))
	}
	lines = append(lines,
		"#min case support: "+FormatFloat(ratioPct(h.MinCase, h.NbCase))+"%",
		"#max control support: "+FormatFloat(ratioPct(h.MaxControl, h.NbControl))+"%",
		"#min case output: "+FormatFloat(ratioPct(h.MinCaseOut, h.NbCase))+"%",
	)
	if h.Method == search.MethodHeuristic {
		lines = append(lines, fmt.Sprintf("#stopping steps: %d", h.ItThreshold))
	}
	lines = append(lines, "", "Output:", "#patterns ( % class1 : % class2 : OR : RR : AR : CI(lci-uci) )")
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// WriteTrailer prints the pattern count and the running time in seconds
func WriteTrailer(w io.Writer, res *search.Result) error {
	_, err := fmt.Fprintf(w, "\n#nb_patterns %d\n#running time %s s\n", res.Patterns, FormatFloat(res.Elapsed.Seconds()))
	return err
}
