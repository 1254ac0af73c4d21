// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package nucleotide provides IUPAC-aware complement and
// reverse-complement operations on ASCII nucleotide strings.
//
// The recognized alphabet is A C G T U W S M K R Y B D H V N in either case.
// Case is preserved per character.  The mapping is not an involution for U:
// U complements to A, but A complements to T.
package nucleotide
