// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// bio-refseq reads subsequences of an indexed reference FASTA and manages its
// .fai and .dict sidecar files.
//
// Sample usage:
//   bio-refseq createdict hg19.fa
//   bio-refseq faidx hg19.fa
//   bio-refseq fetch -strand=- hg19.fa 1:61-70 chrMT:1-100
//   bio-refseq dict hg19.fa
package main

import (
	"github.com/grailbio/base/grail"
	"github.com/grailbio/refseq/cmd/bio-refseq/cmd"
)

func main() {
	shutdown := grail.Init()
	defer shutdown()
	cmd.Run()
}
