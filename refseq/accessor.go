// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package refseq

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/refseq/contig"
	"github.com/grailbio/refseq/encoding/fasta"
	"github.com/grailbio/refseq/encoding/seqdict"
	"github.com/grailbio/refseq/interval"
	"github.com/grailbio/refseq/nucleotide"
)

// Accessor fetches subsequences of an indexed reference FASTA.  After Open
// returns, an Accessor is safe for concurrent use.
type Accessor struct {
	opts  Opts
	dict  *contig.Dictionary
	raw   *fasta.File
	cache *contigCache // nil unless opts.Variant == CachingSingleContig
}

// Open opens the reference described by opts.  The contig dictionary is read
// and validated eagerly, so configuration problems surface here rather than
// on the first fetch.
func Open(ctx context.Context, opts Opts) (_ *Accessor, err error) {
	if opts, err = opts.resolve(ctx); err != nil {
		return nil, err
	}
	raw, err := fasta.OpenIndexed(ctx, opts.FastaPath, opts.IndexPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = raw.Close(ctx)
		}
	}()
	recs, err := seqdict.Open(ctx, opts.DictPath)
	if err != nil {
		return nil, err
	}
	dict, err := contig.Build(recs, contig.Opts{RequireMitochondrial: opts.RequireMitochondrial})
	if err != nil {
		return nil, errors.E(err, opts.DictPath)
	}
	checkIndexConsistency(dict, raw, opts)
	a := &Accessor{opts: opts, dict: dict, raw: raw}
	if opts.Variant == CachingSingleContig {
		a.cache = &contigCache{}
	}
	return a, nil
}

// checkIndexConsistency logs the contigs on which the dictionary and the FASTA
// index disagree.
func checkIndexConsistency(dict *contig.Dictionary, raw fasta.Fasta, opts Opts) {
	for _, rec := range dict.Records() {
		n, err := raw.Len(rec.Name)
		if err != nil {
			log.Printf("refseq: contig %s is in %s but not in %s", rec.Name, opts.DictPath, opts.IndexPath)
			continue
		}
		if n != rec.Length {
			log.Printf("refseq: contig %s has length %d in %s but %d in %s",
				rec.Name, rec.Length, opts.DictPath, n, opts.IndexPath)
		}
	}
}

// Dictionary returns the contig dictionary.
func (a *Accessor) Dictionary() *contig.Dictionary { return a.dict }

// Variant returns the fetch strategy of a.
func (a *Accessor) Variant() Variant { return a.opts.Variant }

// Fetch returns the bases of contigName at the 1-based closed range
// [begin, end], as stored in the FASTA.  end == begin-1 yields "".
//
// contigName may be any alias known to the dictionary.  Other names are
// converted to the dictionary's naming convention and passed to the FASTA
// reader, whose error is returned unchanged.
func (a *Accessor) Fetch(contigName string, begin, end int) (string, error) {
	if begin < 1 || end < begin-1 {
		return "", errors.E(errors.Invalid, fmt.Sprintf("refseq.Fetch %s: invalid range [%d,%d]", contigName, begin, end))
	}
	name := a.dict.Normalize(contigName)
	start0, end0 := uint64(begin-1), uint64(end)
	if a.cache != nil {
		return a.cache.get(a.raw, name, start0, end0)
	}
	return a.raw.Get(name, start0, end0)
}

// FetchInterval returns the bases covered by iv together with iv.  Bases of a
// StrandRev interval are reverse complemented.  If iv.RefID is not in the
// dictionary, FetchInterval returns ok == false and a nil error.
func (a *Accessor) FetchInterval(iv interval.Interval) (_ SequenceInterval, ok bool, err error) {
	if !iv.Strand.Valid() {
		return SequenceInterval{}, false, errors.E(errors.Invalid, fmt.Sprintf("refseq.FetchInterval %v: invalid strand", iv))
	}
	name, ok := a.dict.Name(iv.RefID)
	if !ok {
		return SequenceInterval{}, false, nil
	}
	if iv.Begin < 0 || iv.End < iv.Begin {
		return SequenceInterval{}, false, errors.E(errors.Invalid, fmt.Sprintf("refseq.FetchInterval %v: invalid range", iv))
	}
	seq, err := a.Fetch(name, int(iv.Begin)+1, int(iv.End))
	if err != nil {
		return SequenceInterval{}, false, err
	}
	if iv.Strand == interval.StrandRev {
		if seq, err = a.reverseComplement(seq); err != nil {
			return SequenceInterval{}, false, errors.E(err, iv.String())
		}
	}
	si, err := NewSequenceInterval(iv, seq)
	if err != nil {
		return SequenceInterval{}, false, err
	}
	return si, true, nil
}

func (a *Accessor) reverseComplement(seq string) (string, error) {
	if a.opts.LenientReverseComplement {
		return nucleotide.ReverseComplementLenient(seq), nil
	}
	return nucleotide.ReverseComplement(seq)
}

// Close releases the FASTA file.  a must not be used afterwards.
func (a *Accessor) Close(ctx context.Context) error {
	if a.cache != nil {
		a.cache.reset()
	}
	return a.raw.Close(ctx)
}
