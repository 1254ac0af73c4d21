package refseq

import (
	"encoding/binary"
	"fmt"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/refseq/interval"
	"github.com/grailbio/refseq/nucleotide"
)

// SequenceInterval is an immutable pairing of an interval with its bases.  The
// bases are reported on the interval's strand, so a StrandRev value holds the
// reverse complement of the forward-strand bases.
//
// SequenceInterval values are comparable with ==.  The zero value is empty.
type SequenceInterval struct {
	iv  interval.Interval
	seq string
}

// NewSequenceInterval pairs iv with seq.  It fails with errors.Invalid unless
// len(seq) == iv.Length().
func NewSequenceInterval(iv interval.Interval, seq string) (SequenceInterval, error) {
	if len(seq) != iv.Length() {
		return SequenceInterval{}, errors.E(errors.Invalid,
			fmt.Sprintf("refseq: interval %v has length %d, but sequence has length %d", iv, iv.Length(), len(seq)))
	}
	return SequenceInterval{iv: iv, seq: seq}, nil
}

// Interval returns the interval.
func (s SequenceInterval) Interval() interval.Interval { return s.iv }

// Sequence returns the bases.
func (s SequenceInterval) Sequence() string { return s.seq }

// IsEmpty returns true for the zero value.
func (s SequenceInterval) IsEmpty() bool { return s == SequenceInterval{} }

// Subsequence returns the bases of q, reported on q's strand.  It returns ok
// == false if q is not contained in s's interval.  Strands need not match.
//
// Switching strands always uses the strict nucleotide.ReverseComplement, even
// if s came from an accessor with LenientReverseComplement set.  A FWD value
// holds the FASTA bytes verbatim, so a REV query over a non-IUPAC byte fails
// with errors.Invalid; fetch such queries with Accessor.FetchInterval instead.
func (s SequenceInterval) Subsequence(q interval.Interval) (_ string, ok bool, err error) {
	if !q.Strand.Valid() {
		return "", false, errors.E(errors.Invalid, fmt.Sprintf("refseq.Subsequence %v: invalid strand", q))
	}
	if !s.iv.Contains(q) || q.End < q.Begin {
		return "", false, nil
	}
	// Offsets into s.seq, which runs 5'->3' on s's strand.
	var off int
	if s.iv.Strand == interval.StrandRev {
		off = int(s.iv.End - q.End)
	} else {
		off = int(q.Begin - s.iv.Begin)
	}
	sub := s.seq[off : off+q.Length()]
	if q.Strand != s.iv.Strand {
		if sub, err = nucleotide.ReverseComplement(sub); err != nil {
			return "", false, err
		}
	}
	return sub, true, nil
}

// Hash returns a hash of s that is consistent with ==.
func (s SequenceInterval) Hash() uint64 {
	var key [17]byte
	binary.LittleEndian.PutUint64(key[0:], uint64(s.iv.RefID))
	binary.LittleEndian.PutUint32(key[8:], uint32(s.iv.Begin))
	binary.LittleEndian.PutUint32(key[12:], uint32(s.iv.End))
	key[16] = byte(s.iv.Strand)
	return farm.Hash64WithSeed([]byte(s.seq), farm.Hash64(key[:]))
}

// String implements fmt.Stringer.
func (s SequenceInterval) String() string {
	return fmt.Sprintf("%v %s", s.iv, s.seq)
}
