// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package nucleotide

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// complementTable maps an ASCII nucleotide to its complement, preserving
// case.  Zero entries are outside the alphabet.
var complementTable [256]byte

func init() {
	pairs := [...][2]byte{
		{'A', 'T'}, {'C', 'G'}, {'G', 'C'}, {'T', 'A'}, {'U', 'A'},
		{'W', 'W'}, {'S', 'S'}, {'M', 'K'}, {'K', 'M'}, {'R', 'Y'}, {'Y', 'R'},
		{'B', 'V'}, {'D', 'H'}, {'H', 'D'}, {'V', 'B'}, {'N', 'N'},
	}
	for _, p := range pairs {
		complementTable[p[0]] = p[1]
		complementTable[p[0]+'a'-'A'] = p[1] + 'a' - 'A'
	}
}

// Complement returns the complement of base and true, or (0, false) if base is
// not an IUPAC nucleotide code.
func Complement(base byte) (byte, bool) {
	c := complementTable[base]
	return c, c != 0
}

// Valid returns nil iff every byte of seq is an IUPAC nucleotide code.
func Valid(seq string) error {
	for i := 0; i < len(seq); i++ {
		if complementTable[seq[i]] == 0 {
			return invalidBaseError(seq, i)
		}
	}
	return nil
}

func invalidBaseError(seq string, i int) error {
	return errors.E(errors.Invalid,
		fmt.Sprintf("nucleotide: illegal base %q at offset %d of sequence of length %d", seq[i], i, len(seq)))
}

// ReverseComplement returns the reverse complement of seq.  It fails with an
// errors.Invalid error if seq contains a byte outside the IUPAC alphabet.
func ReverseComplement(seq string) (string, error) {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complementTable[seq[i]]
		if c == 0 {
			return "", invalidBaseError(seq, i)
		}
		out[n-1-i] = c
	}
	return string(out), nil
}

// ReverseComplementLenient is like ReverseComplement, but writes 'N' (or 'n'
// for a lower-case ASCII letter) in place of bytes outside the alphabet.
func ReverseComplementLenient(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[i]
		c := complementTable[b]
		if c == 0 {
			if b >= 'a' && b <= 'z' {
				c = 'n'
			} else {
				c = 'N'
			}
		}
		out[n-1-i] = c
	}
	return string(out)
}
