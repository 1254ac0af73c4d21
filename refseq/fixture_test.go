package refseq_test

import (
	"bytes"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/refseq/encoding/fasta"
	"github.com/grailbio/refseq/encoding/seqdict"
	"github.com/stretchr/testify/require"
)

type testContig struct {
	name   string
	length int
}

// smallHG19 is a three-contig UCSC-style reference.
var smallHG19 = []testContig{
	{"chr1", 10001},
	{"chr2", 10001},
	{"chrM", 1000},
}

// writeReference writes a FASTA with the given contigs, plus its .fai and
// .dict sidecars, to dir.  It returns the FASTA path and the bases of each
// contig.
func writeReference(t testing.TB, dir string, contigs []testContig) (string, map[string]string) {
	const alphabet = "ACGTACGTACGTacgtN"
	r := rand.New(rand.NewSource(int64(len(contigs))))
	bases := make(map[string]string, len(contigs))
	var buf bytes.Buffer
	for _, c := range contigs {
		seq := make([]byte, c.length)
		for i := range seq {
			seq[i] = alphabet[r.Intn(len(alphabet))]
		}
		bases[c.name] = string(seq)
		buf.WriteString(">" + c.name + "\n")
		for len(seq) > 0 {
			n := 60
			if n > len(seq) {
				n = len(seq)
			}
			buf.Write(seq[:n])
			buf.WriteByte('\n')
			seq = seq[n:]
		}
	}
	ctx := vcontext.Background()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "ref.fa")
	require.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0644))
	_, err := fasta.GenerateIndexFile(ctx, path, "")
	require.NoError(t, err)
	_, err = seqdict.GenerateFile(ctx, path, "")
	require.NoError(t, err)
	return path, bases
}
