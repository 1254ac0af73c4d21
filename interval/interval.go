package interval

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
)

// PosType is the coordinate type of an Interval.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// Strand is the orientation of an interval relative to the reference's forward
// direction.
type Strand int8

const (
	// StrandNone is the zero value.  It is not a valid query strand.
	StrandNone Strand = iota
	// StrandFwd is the reference's forward strand.
	StrandFwd
	// StrandRev is the reverse strand; bases reported on it are reverse
	// complemented.
	StrandRev
)

// StrandToASCIITable is the Strand -> ASCII mapping.
var StrandToASCIITable = [...]byte{'.', '+', '-'}

// Valid returns true iff s is StrandFwd or StrandRev.
func (s Strand) Valid() bool {
	return s == StrandFwd || s == StrandRev
}

// Opposite returns the other strand.  StrandNone is returned unchanged.
func (s Strand) Opposite() Strand {
	switch s {
	case StrandFwd:
		return StrandRev
	case StrandRev:
		return StrandFwd
	}
	return s
}

// String implements fmt.Stringer.
func (s Strand) String() string {
	if s < 0 || int(s) >= len(StrandToASCIITable) {
		return fmt.Sprintf("Strand(%d)", int(s))
	}
	return string(StrandToASCIITable[s])
}

// ParseStrand parses "+"/"-" (also "fwd"/"rev").
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+", "fwd", "FWD":
		return StrandFwd, nil
	case "-", "rev", "REV":
		return StrandRev, nil
	}
	return StrandNone, errors.E(errors.Invalid, fmt.Sprintf("interval.ParseStrand: unknown strand %q", s))
}

// Interval is a 0-based half-open range [Begin, End) on the contig with
// dictionary ID RefID.
type Interval struct {
	RefID  int
	Begin  PosType
	End    PosType
	Strand Strand
}

// New returns a validated Interval.
func New(refID int, begin, end PosType, strand Strand) (Interval, error) {
	iv := Interval{RefID: refID, Begin: begin, End: end, Strand: strand}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate checks that the interval is well formed.
func (iv Interval) Validate() error {
	if iv.RefID < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("interval %v: negative contig ID", iv))
	}
	if iv.Begin < 0 || iv.End < iv.Begin {
		return errors.E(errors.Invalid, fmt.Sprintf("interval %v: invalid range", iv))
	}
	if !iv.Strand.Valid() {
		return errors.E(errors.Invalid, fmt.Sprintf("interval %v: invalid strand", iv))
	}
	return nil
}

// Length returns End - Begin.
func (iv Interval) Length() int {
	return int(iv.End - iv.Begin)
}

// WithStrand returns a copy of iv on the given strand.  Coordinates are
// unchanged.
func (iv Interval) WithStrand(s Strand) Interval {
	iv.Strand = s
	return iv
}

// Contains returns true iff other lies within iv on the same contig.  Strands
// are not compared.  Empty intervals at either boundary are contained.
func (iv Interval) Contains(other Interval) bool {
	return iv.RefID == other.RefID && iv.Begin <= other.Begin && other.End <= iv.End
}

// String implements fmt.Stringer.  Coordinates are printed 0-based half-open.
func (iv Interval) String() string {
	return fmt.Sprintf("%d:[%d,%d)%v", iv.RefID, iv.Begin, iv.End, iv.Strand)
}
