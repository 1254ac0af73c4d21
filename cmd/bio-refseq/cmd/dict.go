package cmd

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/refseq/refseq"
)

// printDict writes one TSV line per contig: ID, canonical name, length and
// every name the contig can be fetched by.
func printDict(ctx context.Context, opts refseq.Opts, out io.Writer) (err error) {
	a, err := refseq.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if e := a.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	dict := a.Dictionary()
	w := tsv.NewWriter(out)
	w.WriteString("#id")
	w.WriteString("name")
	w.WriteString("length")
	w.WriteString("aliases")
	if err = w.EndLine(); err != nil {
		return err
	}
	for id, rec := range dict.Records() {
		w.WriteInt64(int64(id))
		w.WriteString(rec.Name)
		w.WriteInt64(int64(rec.Length))
		w.WriteString(strings.Join(dict.Aliases(id), ","))
		if err = w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
