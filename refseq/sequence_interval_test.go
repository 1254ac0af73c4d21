package refseq_test

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/refseq/interval"
	"github.com/grailbio/refseq/refseq"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func newSI(t *testing.T, begin, end interval.PosType, strand interval.Strand, seq string) refseq.SequenceInterval {
	si, err := refseq.NewSequenceInterval(interval.Interval{RefID: 1, Begin: begin, End: end, Strand: strand}, seq)
	assert.NoError(t, err)
	return si
}

func TestNewSequenceInterval(t *testing.T) {
	_, err := refseq.NewSequenceInterval(interval.Interval{Begin: 0, End: 4, Strand: interval.StrandFwd}, "ACG")
	expect.True(t, errors.Is(errors.Invalid, err), err)

	si := newSI(t, 10, 14, interval.StrandFwd, "ACGT")
	expect.EQ(t, si.Sequence(), "ACGT")
	expect.EQ(t, si.Interval().Length(), 4)
	expect.False(t, si.IsEmpty())
	expect.True(t, refseq.SequenceInterval{}.IsEmpty())
	expect.EQ(t, si.String(), "1:[10,14)+ ACGT")
}

func TestSubsequence(t *testing.T) {
	fwd := newSI(t, 10, 18, interval.StrandFwd, "AACCGGTT")
	// Reverse complement of the same forward bases "AACGGGTA".
	rev := newSI(t, 20, 28, interval.StrandRev, "TACCCGTT")

	tests := []struct {
		si         refseq.SequenceInterval
		begin, end interval.PosType
		strand     interval.Strand
		want       string
		ok         bool
	}{
		{fwd, 10, 18, interval.StrandFwd, "AACCGGTT", true},
		{fwd, 12, 15, interval.StrandFwd, "CCG", true},
		{fwd, 12, 15, interval.StrandRev, "CGG", true},
		{fwd, 10, 10, interval.StrandFwd, "", true},
		{fwd, 18, 18, interval.StrandRev, "", true},
		{fwd, 9, 12, interval.StrandFwd, "", false},
		{fwd, 17, 19, interval.StrandFwd, "", false},
		{rev, 20, 28, interval.StrandRev, "TACCCGTT", true},
		{rev, 20, 28, interval.StrandFwd, "AACGGGTA", true},
		{rev, 20, 23, interval.StrandFwd, "AAC", true},
		{rev, 20, 23, interval.StrandRev, "GTT", true},
		{rev, 25, 28, interval.StrandRev, "TAC", true},
		{rev, 28, 28, interval.StrandFwd, "", true},
		{rev, 27, 29, interval.StrandRev, "", false},
	}
	for _, test := range tests {
		q := interval.Interval{RefID: 1, Begin: test.begin, End: test.end, Strand: test.strand}
		got, ok, err := test.si.Subsequence(q)
		assert.NoError(t, err)
		expect.EQ(t, ok, test.ok, "%v in %v", q, test.si)
		expect.EQ(t, got, test.want, "%v in %v", q, test.si)
	}

	// Other contig.
	_, ok, err := fwd.Subsequence(interval.Interval{RefID: 2, Begin: 10, End: 12, Strand: interval.StrandFwd})
	assert.NoError(t, err)
	expect.False(t, ok)

	_, _, err = fwd.Subsequence(interval.Interval{RefID: 1, Begin: 10, End: 12})
	expect.True(t, errors.Is(errors.Invalid, err), err)
}

func TestSubsequenceStrict(t *testing.T) {
	fwd := newSI(t, 0, 6, interval.StrandFwd, "ACGXTu")
	got, ok, err := fwd.Subsequence(interval.Interval{RefID: 1, Begin: 1, End: 4, Strand: interval.StrandFwd})
	assert.NoError(t, err)
	expect.True(t, ok)
	expect.EQ(t, got, "CGX")

	_, _, err = fwd.Subsequence(interval.Interval{RefID: 1, Begin: 1, End: 4, Strand: interval.StrandRev})
	expect.True(t, errors.Is(errors.Invalid, err), err)

	got, ok, err = fwd.Subsequence(interval.Interval{RefID: 1, Begin: 4, End: 6, Strand: interval.StrandRev})
	assert.NoError(t, err)
	expect.True(t, ok)
	expect.EQ(t, got, "aA")
}

func TestSequenceIntervalEquality(t *testing.T) {
	a := newSI(t, 10, 14, interval.StrandFwd, "ACGT")
	b := newSI(t, 10, 14, interval.StrandFwd, "ACGT")
	expect.True(t, a == b)
	expect.EQ(t, a.Hash(), b.Hash())

	for _, other := range []refseq.SequenceInterval{
		newSI(t, 10, 14, interval.StrandRev, "ACGT"),
		newSI(t, 11, 15, interval.StrandFwd, "ACGT"),
		newSI(t, 10, 14, interval.StrandFwd, "ACGA"),
	} {
		expect.False(t, a == other)
		expect.True(t, a.Hash() != other.Hash(), other)
	}
}
