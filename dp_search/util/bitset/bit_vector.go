package bitset

import (
	"math/bits"
	"strings"
)

const (
	LaneBits     = 256 // bits per lane, one AVX2 register
	WordsPerLane = LaneBits / 64
)

// Vector is a fixed-width set of individuals packed into 256-bit lanes.
// Individual id e is stored at absolute bit totalBits-nbSample+e, so the low end of
// the first lane is padding (always zero) and the last individual sits on the last bit.
type Vector struct {
	data     []uint64
	nbSample int
}

// LanesFor returns how many lanes are needed for nbSample individuals.
func LanesFor(nbSample int) int {
	if nbSample <= 0 {
		return 0
	}
	return (nbSample + LaneBits - 1) / LaneBits
}

// New allocates an empty vector over nbSample individuals
func New(nbSample int) *Vector {
	if nbSample < 0 {
		nbSample = 0
	}
	return &Vector{
		data:     make([]uint64, LanesFor(nbSample)*WordsPerLane),
		nbSample: nbSample,
	}
}

// NewFromString builds a vector from a '0'/'1' string, one character per individual.
// Any character other than '1' is treated as absent; validation is the loader's job.
func NewFromString(row string) *Vector {
	v := New(len(row))
	for i := 0; i < len(row); i++ {
		if row[i] == '1' {
			v.SetBit(i, true)
		}
	}
	return v
}

// NbSample is the number of individuals addressed by the vector
func (v *Vector) NbSample() int {
	return v.nbSample
}

func (v *Vector) totalBits() int {
	return len(v.data) * 64
}

// position maps an individual id to its absolute bit position
func (v *Vector) position(id int) int {
	return v.totalBits() - v.nbSample + id
}

// individual maps an absolute bit position back to an individual id
func (v *Vector) individual(pos int) int {
	return pos - (v.totalBits() - v.nbSample)
}

// SetBit sets or clears the bit of individual id. Out of range ids are ignored.
func (v *Vector) SetBit(id int, value bool) {
	if id < 0 || id >= v.nbSample {
		return
	}
	pos := v.position(id)
	if value {
		v.data[pos/64] |= 1 << (pos % 64)
	} else {
		v.data[pos/64] &^= 1 << (pos % 64)
	}
}

// GetBit reports whether individual id is in the set
func (v *Vector) GetBit(id int) bool {
	if id < 0 || id >= v.nbSample {
		return false
	}
	pos := v.position(id)
	return v.data[pos/64]&(1<<(pos%64)) != 0
}

// FillWithOnes adds individuals [start, start+num) to the set
func (v *Vector) FillWithOnes(start, num int) {
	if start < 0 || num < 0 {
		return
	}
	end := start + num
	if end > v.nbSample {
		end = v.nbSample
	}
	for id := start; id < end; id++ {
		v.SetBit(id, true)
	}
}

// IsEmpty reports whether no individual is set
func (v *Vector) IsEmpty() bool {
	for _, w := range v.data {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the population of the set
func (v *Vector) Count() int {
	count := 0
	for _, w := range v.data {
		count += bits.OnesCount64(w)
	}
	return count
}

// Positions returns the ids of all individuals in the set, ascending.
func (v *Vector) Positions() []int {
	res := make([]int, 0, v.Count())
	for blockIndex, block := range v.data {
		for block != 0 {
			bit := bits.TrailingZeros64(block)
			res = append(res, v.individual(blockIndex*64+bit))
			block &= block - 1
		}
	}
	return res
}

// Min returns the smallest individual id in the set, or -1 when empty
func (v *Vector) Min() int {
	for blockIndex, block := range v.data {
		if block != 0 {
			return v.individual(blockIndex*64 + bits.TrailingZeros64(block))
		}
	}
	return -1
}

// Max returns the largest individual id in the set, or -1 when empty
func (v *Vector) Max() int {
	for blockIndex := len(v.data) - 1; blockIndex >= 0; blockIndex-- {
		if block := v.data[blockIndex]; block != 0 {
			return v.individual(blockIndex*64 + 63 - bits.LeadingZeros64(block))
		}
	}
	return -1
}

// Union ors other into v
func (v *Vector) Union(other *Vector) {
	for i := range v.data {
		v.data[i] |= other.data[i]
	}
}

// Intersect ands other into v
func (v *Vector) Intersect(other *Vector) {
	for i := range v.data {
		v.data[i] &= other.data[i]
	}
}

// AndNot clears every individual of other from v
func (v *Vector) AndNot(other *Vector) {
	for i := range v.data {
		v.data[i] &^= other.data[i]
	}
}

// SymmetricDiff xors other into v. Callers use it as a set difference when one
// operand is known to contain the other.
func (v *Vector) SymmetricDiff(other *Vector) {
	for i := range v.data {
		v.data[i] ^= other.data[i]
	}
}

// IsSubsetOf reports whether every individual of v is also in super
func (v *Vector) IsSubsetOf(super *Vector) bool {
	for i, w := range v.data {
		if w&^super.data[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether both vectors hold the same individuals
func (v *Vector) Equal(other *Vector) bool {
	if v.nbSample != other.nbSample || len(v.data) != len(other.data) {
		return false
	}
	for i, w := range v.data {
		if w != other.data[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (v *Vector) Clone() *Vector {
	data := make([]uint64, len(v.data))
	copy(data, v.data)
	return &Vector{data: data, nbSample: v.nbSample}
}

// String renders the set as one '0'/'1' character per individual, in id order.
func (v *Vector) String() string {
	builder := strings.Builder{}
	builder.Grow(v.nbSample)
	for id := 0; id < v.nbSample; id++ {
		if v.GetBit(id) {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	return builder.String()
}

// Union returns a fresh vector holding a ∪ b
func Union(a, b *Vector) *Vector {
	res := a.Clone()
	res.Union(b)
	return res
}

// Difference returns a fresh vector holding a \ b, computed as a symmetric
// difference. b must be a subset of a.
func Difference(a, b *Vector) *Vector {
	res := a.Clone()
	res.SymmetricDiff(b)
	return res
}
