// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package nucleotide_test

import (
	"math/rand"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/refseq/nucleotide"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"A", "T"}, {"C", "G"}, {"G", "C"}, {"T", "A"}, {"U", "A"},
		{"W", "W"}, {"S", "S"}, {"M", "K"}, {"K", "M"}, {"R", "Y"}, {"Y", "R"},
		{"B", "V"}, {"D", "H"}, {"H", "D"}, {"V", "B"}, {"N", "N"},
		{"AtcGuB", "VaCgaT"},
		{"caatgagccc", "gggctcattg"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := nucleotide.ReverseComplement(tt.template)
		assert.NoError(t, err)
		expect.EQ(t, got, tt.want, "template %q", tt.template)
		expect.EQ(t, nucleotide.ReverseComplementLenient(tt.template), tt.want)
	}
}

func TestReverseComplementAsymmetricU(t *testing.T) {
	got, err := nucleotide.ReverseComplement("U")
	assert.NoError(t, err)
	expect.EQ(t, got, "A")
	got, err = nucleotide.ReverseComplement(got)
	assert.NoError(t, err)
	expect.EQ(t, got, "T")

	got, err = nucleotide.ReverseComplement("u")
	assert.NoError(t, err)
	expect.EQ(t, got, "a")
}

func TestReverseComplementStrict(t *testing.T) {
	for _, seq := range []string{"ATCxX", "ACGT-", "AC GT", "acgt\n", "\x00"} {
		_, err := nucleotide.ReverseComplement(seq)
		expect.True(t, errors.Is(errors.Invalid, err), "seq %q: %v", seq, err)
		expect.True(t, errors.Is(errors.Invalid, nucleotide.Valid(seq)))
	}
	_, err := nucleotide.ReverseComplement("ACxGT")
	assert.Regexp(t, err, "illegal base 'x' at offset 2")
	assert.NoError(t, nucleotide.Valid("ACGTUWSMKRYBDHVNacgtuwsmkrybdhvn"))
}

func TestReverseComplementLenient(t *testing.T) {
	expect.EQ(t, nucleotide.ReverseComplementLenient("ATCxX"), "NnGAT")
	expect.EQ(t, nucleotide.ReverseComplementLenient("AC-GT"), "ACNGT")
}

func TestComplement(t *testing.T) {
	c, ok := nucleotide.Complement('m')
	expect.True(t, ok)
	expect.EQ(t, c, byte('k'))
	_, ok = nucleotide.Complement('X')
	expect.False(t, ok)
}

// Without U, reverse complementation is an involution.
func TestReverseComplementInvolution(t *testing.T) {
	const alphabet = "ACGTWSMKRYBDHVNacgtwsmkrybdhvn"
	r := rand.New(rand.NewSource(0))
	for iter := 0; iter < 200; iter++ {
		seq := make([]byte, r.Intn(500))
		for i := range seq {
			seq[i] = alphabet[r.Intn(len(alphabet))]
		}
		rc, err := nucleotide.ReverseComplement(string(seq))
		assert.NoError(t, err)
		expect.EQ(t, len(rc), len(seq))
		rcrc, err := nucleotide.ReverseComplement(rc)
		assert.NoError(t, err)
		expect.EQ(t, rcrc, string(seq))
	}
}

func BenchmarkReverseComplement(b *testing.B) {
	seq := make([]byte, 1<<20)
	for i := range seq {
		seq[i] = "ACGT"[i&3]
	}
	s := string(seq)
	b.SetBytes(int64(len(s)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := nucleotide.ReverseComplement(s); err != nil {
			b.Fatal(err)
		}
	}
}
