package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/refseq/interval"
	"github.com/grailbio/refseq/refseq"
)

type fetchFlags struct {
	strand      *string
	lineWidth   *int
	parallelism *int
	bed         *string
	mergeBED    *bool
}

// resolveRegion converts a command-line region to an interval on the
// reference.  A region without positions covers the whole contig.
func resolveRegion(a *refseq.Accessor, r interval.Region, strand interval.Strand) (interval.Interval, error) {
	dict := a.Dictionary()
	id, ok := dict.ID(r.ContigName)
	if !ok {
		return interval.Interval{}, errors.E(errors.NotExist, fmt.Sprintf("contig %s not in dictionary", r.ContigName))
	}
	iv := interval.Interval{RefID: id, Begin: r.Start0, End: r.End, Strand: strand}
	if r.Whole() {
		n, _ := dict.Length(id)
		iv.End = interval.PosType(n)
	}
	return iv, iv.Validate()
}

func fetch(ctx context.Context, opts refseq.Opts, flags fetchFlags, regionArgs []string, out io.Writer) (err error) {
	strand, err := interval.ParseStrand(*flags.strand)
	if err != nil {
		return err
	}
	regions := make([]interval.Region, len(regionArgs))
	for i, arg := range regionArgs {
		if regions[i], err = interval.ParseRegionString(arg); err != nil {
			return errors.E(errors.Invalid, arg, err)
		}
	}
	if flags.bed != nil && *flags.bed != "" {
		bedRegions, err := interval.ReadBEDFile(ctx, *flags.bed, interval.BEDOpts{Merge: *flags.mergeBED})
		if err != nil {
			return errors.E(err, *flags.bed)
		}
		regions = append(regions, bedRegions...)
	}
	if len(regions) == 0 {
		return errors.E(errors.Invalid, "fetch: no regions")
	}
	a, err := refseq.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if e := a.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()

	seqs := make([]refseq.SequenceInterval, len(regions))
	parallelism := *flags.parallelism
	if parallelism <= 0 {
		parallelism = len(regions)
	}
	err = traverse.Limit(parallelism).Each(len(regions), func(i int) error {
		iv, err := resolveRegion(a, regions[i], strand)
		if err != nil {
			return errors.E(err, regions[i].String())
		}
		si, ok, err := a.FetchInterval(iv)
		if err != nil {
			return errors.E(err, regions[i].String())
		}
		if !ok {
			return errors.E(errors.NotExist, regions[i].String())
		}
		seqs[i] = si
		return nil
	})
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	for i, si := range seqs {
		name := regions[i].String()
		if strand == interval.StrandRev {
			name += "/rc"
		}
		writeFastaRecord(w, name, si.Sequence(), *flags.lineWidth)
	}
	return w.Flush()
}

func writeFastaRecord(w *bufio.Writer, name, seq string, lineWidth int) {
	w.WriteString(">" + name + "\n") // nolint: errcheck
	if lineWidth <= 0 {
		lineWidth = len(seq)
	}
	for len(seq) > 0 {
		n := lineWidth
		if n > len(seq) {
			n = len(seq)
		}
		w.WriteString(seq[:n]) // nolint: errcheck
		w.WriteByte('\n')      // nolint: errcheck
		seq = seq[n:]
	}
}
