package seqdict

import (
	"context"
	"crypto/md5"
	"io"
	"net/url"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/refseq/contig"
	"github.com/grailbio/refseq/encoding/fasta"
)

// Entry is one @SQ line.
type Entry struct {
	contig.Record
	// MD5 is the digest of the upper-cased sequence, or nil.
	MD5 []byte
	// URI is the location of the FASTA file, or "".
	URI string
}

// Write writes a sequence dictionary listing entries in order.
func Write(w io.Writer, entries []Entry) error {
	refs := make([]*sam.Reference, len(entries))
	for i, e := range entries {
		var uri *url.URL
		if e.URI != "" {
			var err error
			if uri, err = url.Parse(e.URI); err != nil {
				return errors.E(errors.Invalid, "seqdict.Write", e.Name, err)
			}
		}
		ref, err := sam.NewReference(e.Name, "", "", int(e.Length), e.MD5, uri)
		if err != nil {
			return errors.E(errors.Invalid, "seqdict.Write", e.Name, err)
		}
		refs[i] = ref
	}
	h, err := sam.NewHeader(nil, refs)
	if err != nil {
		return errors.E(errors.Invalid, "seqdict.Write", err)
	}
	h.Version = "1.6"
	text, err := h.MarshalText()
	if err != nil {
		return errors.E(err, "seqdict.Write")
	}
	_, err = w.Write(text)
	return err
}

// Generate reads FASTA data from r, which may be compressed, and writes the
// corresponding sequence dictionary to w.  The whole FASTA is held in memory.
// If uri is nonempty, it is recorded as the UR field of every entry.
func Generate(w io.Writer, r io.Reader, uri string) error {
	cr, _ := compress.NewReader(r)
	defer cr.Close() // nolint: errcheck
	fa, err := fasta.New(cr)
	if err != nil {
		return errors.E(err, "seqdict.Generate")
	}
	names := fa.SeqNames()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		n, err := fa.Len(name)
		if err != nil {
			return err
		}
		if n == 0 {
			log.Printf("seqdict.Generate: skipping empty sequence %s", name)
			continue
		}
		seq, err := fa.Get(name, 0, n)
		if err != nil {
			return err
		}
		sum := md5.Sum([]byte(strings.ToUpper(seq)))
		entries = append(entries, Entry{
			Record: contig.Record{Name: name, Length: n},
			MD5:    sum[:],
			URI:    uri,
		})
	}
	if len(entries) == 0 {
		return errors.E(errors.Invalid, "seqdict.Generate: no sequences in FASTA")
	}
	return Write(w, entries)
}

// GenerateFile writes the sequence dictionary of the FASTA at fastaPath to
// dictPath.  An empty dictPath means fastaPath + Suffix.  It returns the path
// written.
func GenerateFile(ctx context.Context, fastaPath, dictPath string) (_ string, err error) {
	if dictPath == "" {
		dictPath = fastaPath + Suffix
	}
	in, err := file.Open(ctx, fastaPath)
	if err != nil {
		return "", errors.E(err, "seqdict.GenerateFile", fastaPath)
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	out, err := file.Create(ctx, dictPath)
	if err != nil {
		return "", errors.E(err, "seqdict.GenerateFile", dictPath)
	}
	uri := fastaPath
	if !strings.Contains(uri, "://") {
		uri = "file:" + uri
	}
	if err = Generate(out.Writer(ctx), in.Reader(ctx), uri); err != nil {
		_ = out.Close(ctx)
		return "", err
	}
	if err = out.Close(ctx); err != nil {
		return "", errors.E(err, "seqdict.GenerateFile", dictPath)
	}
	log.Debug.Printf("seqdict: wrote %s", dictPath)
	return dictPath, nil
}
