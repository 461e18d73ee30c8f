package report

import (
	"bufio"
	"io"
	"sort"

	mapset "github.com/deckarep/golang-set"

	"ssdps/dp_search/search"
)

// Writer prints patterns as they are found, one line each
type Writer struct {
	out      *bufio.Writer
	filter   *Filter
	items    mapset.Set
	Printed  int
	Filtered int
}

// NewWriter wraps w. filter may be nil.
func NewWriter(w io.Writer, filter *Filter) *Writer {
	return &Writer{
		out:    bufio.NewWriter(w),
		filter: filter,
		items:  mapset.NewSet(),
	}
}

// Emit implements search.Emitter
func (w *Writer) Emit(p *search.Pattern) error {
	ok, err := w.filter.Match(p)
	if err != nil {
		return err
	}
	if !ok {
		w.Filtered++
		return nil
	}
	for _, label := range p.Labels {
		w.items.Add(label)
	}
	w.Printed++
	if _, err := w.out.WriteString(FormatPattern(p)); err != nil {
		return err
	}
	return w.out.WriteByte('\n')
}

// Header writes the comment block through the buffer
func (w *Writer) Header(h HeaderInfo) error {
	return WriteHeader(w.out, h)
}

// Trailer writes the closing counters and flushes
func (w *Writer) Trailer(res *search.Result) error {
	if err := WriteTrailer(w.out, res); err != nil {
		return err
	}
	return w.Flush()
}

func (w *Writer) Flush() error {
	return w.out.Flush()
}

// DistinctItems labels of the items occurring in at least one printed pattern, ascending
func (w *Writer) DistinctItems() []int {
	labels := make([]int, 0, w.items.Cardinality())
	for _, v := range w.items.ToSlice() {
		labels = append(labels, v.(int))
	}
	sort.Ints(labels)
	return labels
}
