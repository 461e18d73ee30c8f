package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"ssdps/dp_search/stat"
	"ssdps/dp_search/util/bitset"
	"ssdps/share/base/logger"
	"ssdps/utils"
)

// maxRowBytes upper bound of one matrix line
const maxRowBytes = 64 * 1024 * 1024

// Filter item selection applied while loading.
// Supports are percentages of the class sizes; a non-positive MaxControlPct keeps every
// control support. PValue 0 disables the p-value filter.
type Filter struct {
	MinCasePct    float64
	MaxControlPct float64
	PValue        float64
}

// Support converts the percentage filters into absolute counts
func (f Filter) Support(nbCase, nbControl int) (minCase, maxControl int) {
	if f.MinCasePct > 0 {
		minCase = int(math.Ceil(f.MinCasePct/100*float64(nbCase) - 1e-9))
	}
	maxControl = nbControl
	if f.MaxControlPct > 0 && f.MaxControlPct < 100 {
		maxControl = int(math.Floor(f.MaxControlPct/100*float64(nbControl) + 1e-9))
	}
	return minCase, maxControl
}

// LoadStats what happened to the rows of the input
type LoadStats struct {
	Rows       int // data rows read, comments excluded
	Kept       int
	Filtered   int
	MinCase    int // absolute case support threshold
	MaxControl int // absolute control support threshold
}

type builder struct {
	ds         *Dataset
	minCase    int
	maxControl int
	pValue     float64
	stats      LoadStats
}

func newBuilder(nbCase, nbControl int, f Filter) *builder {
	minCase, maxControl := f.Support(nbCase, nbControl)
	return &builder{
		ds:         New(nbCase, nbControl),
		minCase:    minCase,
		maxControl: maxControl,
		pValue:     f.PValue,
		stats:      LoadStats{MinCase: minCase, MaxControl: maxControl},
	}
}

// skip empty and comment lines
func skip(line string) bool {
	return len(line) == 0 || line[0] == '#'
}

// add validates one row and keeps it if it passes the support filters.
// The label is the running row number, filtered rows included.
func (b *builder) add(row string, lineNo int) error {
	if len(row) != b.ds.NbSample {
		return fmt.Errorf("line %d: got %d symbols, want %d: %w", lineNo, len(row), b.ds.NbSample, utils.ErrRowLength)
	}
	caseSupport, controlSupport := 0, 0
	for i := 0; i < len(row); i++ {
		switch row[i] {
		case '1':
			if i < b.ds.NbCase {
				caseSupport++
			} else {
				controlSupport++
			}
		case '0':
		default:
			return fmt.Errorf("line %d: symbol %q at column %d: %w", lineNo, row[i], i, utils.ErrRowSymbol)
		}
	}
	label := b.stats.Rows
	b.stats.Rows++

	keep := caseSupport >= b.minCase && controlSupport <= b.maxControl
	if keep && b.pValue != 0 {
		p := stat.PValue(caseSupport, b.ds.NbCase-caseSupport, controlSupport, b.ds.NbControl-controlSupport)
		keep = p > 0 && p <= b.pValue
	}
	if !keep {
		b.stats.Filtered++
		return nil
	}
	b.ds.AddItem(label, bitset.NewFromString(row))
	b.stats.Kept++
	return nil
}

// ParseHeader reads "<tag> <nb_case> <nb_control>"
func ParseHeader(line string) (nbCase, nbControl int, err error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("header %q: %w", line, utils.ErrMatrixHeader)
	}
	nbCase, err = strconv.Atoi(fields[1])
	if err != nil || nbCase < 0 {
		return 0, 0, fmt.Errorf("header %q: bad case count: %w", line, utils.ErrMatrixHeader)
	}
	nbControl, err = strconv.Atoi(fields[2])
	if err != nil || nbControl < 0 {
		return 0, 0, fmt.Errorf("header %q: bad control count: %w", line, utils.ErrMatrixHeader)
	}
	return nbCase, nbControl, nil
}

// Build packs rows of '0'/'1' symbols into a dataset. Empty and '#' rows are skipped.
func Build(rows []string, nbCase, nbControl int, f Filter) (*Dataset, LoadStats, error) {
	b := newBuilder(nbCase, nbControl, f)
	for i, row := range rows {
		row = strings.TrimRight(row, " \t\r\n")
		if skip(row) {
			continue
		}
		if err := b.add(row, i+1); err != nil {
			return nil, b.stats, err
		}
	}
	return b.ds, b.stats, nil
}

// Load reads a matrix: the first non-empty line is the header, every following
// non-comment line is one item over all individuals, cases first.
func Load(r io.Reader, f Filter) (*Dataset, LoadStats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRowBytes)

	var b *builder
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if b == nil {
			if len(line) == 0 {
				continue
			}
			nbCase, nbControl, err := ParseHeader(line)
			if err != nil {
				return nil, LoadStats{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			b = newBuilder(nbCase, nbControl, f)
			continue
		}
		if skip(line) {
			continue
		}
		if err := b.add(line, lineNo); err != nil {
			return nil, b.stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, LoadStats{}, fmt.Errorf("%v: %w", err, utils.ErrReadMatrix)
	}
	if b == nil {
		return nil, LoadStats{}, fmt.Errorf("no header found: %w", utils.ErrMatrixHeader)
	}
	return b.ds, b.stats, nil
}

// LoadFile opens and loads a matrix file
func LoadFile(path string, f Filter) (*Dataset, LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		logger.Errorf("open matrix file %s failed, err: %v", path, err)
		return nil, LoadStats{}, fmt.Errorf("%s: %w", path, utils.ErrOpenMatrix)
	}
	defer file.Close()

	ds, stats, err := Load(file, f)
	if err != nil {
		return nil, stats, err
	}
	logger.Infof("loaded %s: %d cases, %d controls, %d rows, %d kept, %d filtered",
		path, ds.NbCase, ds.NbControl, stats.Rows, stats.Kept, stats.Filtered)
	return ds, stats, nil
}
