// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package refseq

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/refseq/encoding/fasta"
	"github.com/grailbio/refseq/encoding/seqdict"
)

// Variant selects the fetch strategy of an Accessor.
type Variant int

const (
	// SingleQuery reads every request straight from the indexed FASTA.
	SingleQuery Variant = iota
	// CachingSingleContig keeps the most recently requested contig in memory.
	// It suits callers that walk one contig at a time.  Fetched bases are
	// copied out of the cache, so results never hold on to an evicted contig.
	CachingSingleContig
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case SingleQuery:
		return "single"
	case CachingSingleContig:
		return "caching"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "single":
		return SingleQuery, nil
	case "caching":
		return CachingSingleContig, nil
	}
	return SingleQuery, errors.E(errors.Invalid, fmt.Sprintf("refseq: unknown accessor variant %q", s))
}

// Opts configures Open.
type Opts struct {
	// FastaPath is the path of the reference FASTA.  Required.
	FastaPath string
	// IndexPath is the path of the samtools-style .fai index.  If empty,
	// FastaPath + ".fai" is used.
	IndexPath string
	// DictPath is the path of the sequence dictionary.  If empty,
	// FastaPath + ".dict" is used.
	DictPath string
	// Variant selects the fetch strategy.
	Variant Variant
	// RequireMitochondrial causes Open to fail when the dictionary has no
	// M or MT contig.
	RequireMitochondrial bool
	// LenientReverseComplement makes reverse-strand fetches write N in place
	// of bases outside the IUPAC alphabet instead of failing.
	LenientReverseComplement bool
}

// DefaultOpts is the default Opts value.  FastaPath must still be set.
var DefaultOpts = Opts{
	Variant:              SingleQuery,
	RequireMitochondrial: true,
}

// resolve fills in the sidecar paths and checks that every input exists.
func (o Opts) resolve(ctx context.Context) (Opts, error) {
	if o.FastaPath == "" {
		return o, errors.E(errors.Invalid, "refseq.Open: FastaPath not set")
	}
	if o.Variant != SingleQuery && o.Variant != CachingSingleContig {
		return o, errors.E(errors.Invalid, fmt.Sprintf("refseq.Open: invalid variant %v", o.Variant))
	}
	if o.IndexPath == "" {
		o.IndexPath = o.FastaPath + fasta.IndexSuffix
	}
	if o.DictPath == "" {
		o.DictPath = o.FastaPath + seqdict.Suffix
	}
	for _, p := range []struct{ what, path string }{
		{"FASTA", o.FastaPath},
		{"FASTA index", o.IndexPath},
		{"sequence dictionary", o.DictPath},
	} {
		if _, err := file.Stat(ctx, p.path); err != nil {
			return o, errors.E(errors.NotExist, fmt.Sprintf("refseq.Open: %s %s not found", p.what, p.path), err)
		}
	}
	log.Debug.Printf("refseq: fasta %s, index %s, dict %s", o.FastaPath, o.IndexPath, o.DictPath)
	return o, nil
}
