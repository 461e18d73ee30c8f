package search

import (
	"github.com/yourbasic/bit"

	"ssdps/dp_search/stat"
	"ssdps/dp_search/util/bitset"
)

// Pattern one emitted discriminative pattern
type Pattern struct {
	// Labels input row numbers of the items shared by every individual of the group
	Labels []int
	Group  *bitset.Vector
	// Individuals ids of the group, cases first
	Individuals *bit.Set
	Table       stat.Table
	Stats       stat.Stats
	// Thresholds in force when the pattern was found
	Thresholds stat.Thresholds
}

// Emitter receives patterns in discovery order. An error stops the search.
type Emitter interface {
	Emit(p *Pattern) error
}

// EmitterFunc adapts a function to Emitter
type EmitterFunc func(p *Pattern) error

func (f EmitterFunc) Emit(p *Pattern) error {
	return f(p)
}

// Collector keeps every pattern in memory
type Collector struct {
	Patterns []*Pattern
}

func (c *Collector) Emit(p *Pattern) error {
	c.Patterns = append(c.Patterns, p)
	return nil
}
