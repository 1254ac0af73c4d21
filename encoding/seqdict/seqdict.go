// Package seqdict reads and writes sequence dictionaries (".dict" files).
//
// A sequence dictionary is a SAM header whose @SQ lines list the name (SN),
// length (LN) and optionally the MD5 digest (M5) and URI (UR) of every
// sequence of a reference FASTA, in file order.  For example:
//
//   @HD	VN:1.6
//   @SQ	SN:chr1	LN:248956422	M5:2648ae1bacce4ec4b6cf337dcae37816	UR:file:/ref/hg38.fa
//
// This is the format emitted by "picard CreateSequenceDictionary" and
// "samtools dict".
package seqdict

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/refseq/contig"
	"github.com/klauspost/compress/gzip"
)

// Suffix is appended to a FASTA path to form the default dictionary path.
const Suffix = ".dict"

// Read parses a sequence dictionary and returns its records in order.  It
// fails with errors.Invalid if a sequence name appears on more than one @SQ
// line.
func Read(r io.Reader) ([]contig.Record, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.E(err, "seqdict.Read")
	}
	// The SAM header parser merges repeated @SQ lines, so duplicates must be
	// found in the raw text.
	nSQ, err := checkSQNames(data)
	if err != nil {
		return nil, err
	}
	sr, err := sam.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.E(errors.Invalid, "seqdict.Read: malformed sequence dictionary", err)
	}
	refs := sr.Header().Refs()
	if len(refs) == 0 {
		return nil, errors.E(errors.Invalid, "seqdict.Read: no @SQ lines in sequence dictionary")
	}
	if len(refs) != nSQ {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("seqdict.Read: %d @SQ lines, but %d sequences", nSQ, len(refs)))
	}
	recs := make([]contig.Record, len(refs))
	for i, ref := range refs {
		if ref.Len() <= 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("seqdict.Read: sequence %q has no length", ref.Name()))
		}
		recs[i] = contig.Record{Name: ref.Name(), Length: uint64(ref.Len())}
	}
	return recs, nil
}

var (
	sqPrefix = []byte("@SQ\t")
	snPrefix = []byte("SN:")
)

// checkSQNames returns the number of @SQ lines in data.  It fails if two of
// them carry the same SN.
func checkSQNames(data []byte) (int, error) {
	seen := map[string]int{}
	n := 0
	for lineIdx, line := range bytes.Split(data, []byte{'\n'}) {
		if !bytes.HasPrefix(line, sqPrefix) {
			continue
		}
		n++
		for _, field := range bytes.Split(bytes.TrimRight(line, "\r"), []byte{'\t'})[1:] {
			if !bytes.HasPrefix(field, snPrefix) {
				continue
			}
			name := string(field[len(snPrefix):])
			if prev, ok := seen[name]; ok {
				return 0, errors.E(errors.Invalid, fmt.Sprintf(
					"seqdict.Read: duplicate sequence %q on lines %d and %d", name, prev, lineIdx+1))
			}
			seen[name] = lineIdx + 1
		}
	}
	return n, nil
}

// Open reads the sequence dictionary at path.  Paths ending in ".gz" are
// decompressed.
func Open(ctx context.Context, path string) (recs []contig.Record, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "seqdict.Open", path)
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	var r io.Reader = in.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.E(err, "seqdict.Open", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	if recs, err = Read(r); err != nil {
		return nil, errors.E(err, path)
	}
	return recs, nil
}
