package interval

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/klauspost/compress/gzip"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// BEDOpts controls ReadBED.
type BEDOpts struct {
	// OneBasedInput interprets the BED interval boundaries as one-based [start,
	// end] instead of the usual zero-based [start, end).
	OneBasedInput bool
	// Merge combines touching or overlapping intervals on the same contig.
	// The input must then be sorted by start within each contig.
	Merge bool
}

var (
	bedHeaderPrefixes = [][]byte{[]byte("#"), []byte("track"), []byte("browser")}
)

// ReadBED reads the first three columns of a BED file.  Header, comment and
// blank lines are skipped, as are empty intervals.  Regions are returned in
// file order.
func ReadBED(r io.Reader, opts BEDOpts) ([]Region, error) {
	var startSubtract int
	if opts.OneBasedInput {
		startSubtract++
	}
	scanner := bufio.NewScanner(r)
	var (
		tokens  [3][]byte
		regions []Region
		lineIdx int
		// seen records contigs whose run of lines has ended.
		seen = map[string]bool{}
	)
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		skip := false
		for _, prefix := range bedHeaderPrefixes {
			if bytes.HasPrefix(curLine, prefix) {
				skip = true
			}
		}
		if skip {
			continue
		}
		nToken := getTokens(tokens[:], curLine)
		if nToken != 3 {
			if nToken == 0 {
				continue
			}
			return nil, fmt.Errorf("interval.ReadBED: line %d has fewer tokens than expected", lineIdx)
		}
		parsedStart, err := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		if err != nil {
			return nil, fmt.Errorf("interval.ReadBED: line %d: %v", lineIdx, err)
		}
		parsedStart -= startSubtract
		if parsedStart < 0 {
			return nil, fmt.Errorf("interval.ReadBED: negative start coordinate %s on line %d", tokens[1], lineIdx)
		}
		parsedEnd, err := strconv.Atoi(gunsafe.BytesToString(tokens[2]))
		if err != nil {
			return nil, fmt.Errorf("interval.ReadBED: line %d: %v", lineIdx, err)
		}
		if parsedEnd < parsedStart || parsedEnd >= PosTypeMax {
			return nil, fmt.Errorf("interval.ReadBED: invalid coordinate pair on line %d", lineIdx)
		}
		if parsedEnd == parsedStart {
			continue
		}
		cur := Region{
			// tokens[0] refers to scanner memory; make a copy.
			ContigName: string(tokens[0]),
			Start0:     PosType(parsedStart),
			End:        PosType(parsedEnd),
		}
		if !opts.Merge || len(regions) == 0 {
			regions = append(regions, cur)
			continue
		}
		prev := &regions[len(regions)-1]
		if prev.ContigName != cur.ContigName {
			seen[prev.ContigName] = true
			if seen[cur.ContigName] {
				return nil, fmt.Errorf("interval.ReadBED: unsorted input (split contig %s) on line %d", cur.ContigName, lineIdx)
			}
			regions = append(regions, cur)
			continue
		}
		if cur.Start0 < prev.Start0 {
			return nil, fmt.Errorf("interval.ReadBED: unsorted input on line %d", lineIdx)
		}
		if cur.Start0 > prev.End {
			regions = append(regions, cur)
			continue
		}
		if cur.End > prev.End {
			prev.End = cur.End
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return regions, nil
}

// ReadBEDFile is a wrapper for ReadBED that takes a path instead of an
// io.Reader.  Gzipped files are decompressed.
func ReadBEDFile(ctx context.Context, path string, opts BEDOpts) (regions []Region, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	if regions, err = ReadBED(reader, opts); err != nil {
		return
	}
	log.Debug.Printf("interval: read %d region(s) from %s", len(regions), path)
	return
}
