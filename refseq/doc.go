// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
Package refseq reads subsequences of a reference genome stored as an indexed
FASTA file.

A reference consists of three files: the FASTA itself, its samtools-style
.fai index, and a sequence dictionary (.dict) listing the contigs in order.
By default the sidecars are expected next to the FASTA:

  hg19.fa
  hg19.fa.fai
  hg19.fa.dict

The dictionary defines contig IDs and names.  Contigs can be addressed with or
without the "chr" prefix, and the mitochondrial contig as any of M, MT, chrM
and chrMT, regardless of the spelling used in the FASTA.

Sample usage:

  opts := refseq.DefaultOpts
  opts.FastaPath = "hg19.fa"
  a, err := refseq.Open(ctx, opts)
  ...
  bases, err := a.Fetch("1", 61, 70) // 1-based, closed
  si, ok, err := a.FetchInterval(interval.Interval{
    RefID: 0, Begin: 60, End: 70, Strand: interval.StrandRev})

Use Variant CachingSingleContig when queries walk along one contig at a time;
it keeps the current contig in memory.
*/
package refseq
