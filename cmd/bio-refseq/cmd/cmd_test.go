package cmd

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/refseq/encoding/fasta"
	"github.com/grailbio/refseq/encoding/seqdict"
	"github.com/grailbio/refseq/refseq"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const testFasta = `>chr1 test
ACGTACGTTT
GGCCAAN
>chrM
aaccggttac
`

func writeTestReference(t *testing.T, dir string) string {
	ctx := vcontext.Background()
	path := filepath.Join(dir, "test.fa")
	assert.NoError(t, ioutil.WriteFile(path, []byte(testFasta), 0644))
	_, err := fasta.GenerateIndexFile(ctx, path, "")
	assert.NoError(t, err)
	_, err = seqdict.GenerateFile(ctx, path, "")
	assert.NoError(t, err)
	return path
}

func testFetchFlags(strand string, lineWidth int) fetchFlags {
	parallelism := 2
	bed, merge := "", false
	return fetchFlags{strand: &strand, lineWidth: &lineWidth, parallelism: &parallelism, bed: &bed, mergeBED: &merge}
}

func TestFetch(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()
	opts := refseq.DefaultOpts
	opts.FastaPath = writeTestReference(t, tempDir)

	tests := []struct {
		strand    string
		lineWidth int
		regions   []string
		want      string
	}{
		{"+", 60, []string{"1:3-12"}, ">1:3-12\nGTACGTTTGG\n"},
		{"+", 4, []string{"chr1:3-12", "MT:2"}, ">chr1:3-12\nGTAC\nGTTT\nGG\n>MT:2-2\na\n"},
		{"-", 0, []string{"chr1:9-12"}, ">chr1:9-12/rc\nCCAA\n"},
		{"+", 60, []string{"chrMT"}, ">chrMT\naaccggttac\n"},
		{"-", 60, []string{"M"}, ">M/rc\ngtaaccggtt\n"},
	}
	for _, test := range tests {
		for _, variant := range []refseq.Variant{refseq.SingleQuery, refseq.CachingSingleContig} {
			opts.Variant = variant
			var out bytes.Buffer
			assert.NoError(t, fetch(ctx, opts, testFetchFlags(test.strand, test.lineWidth), test.regions, &out))
			expect.EQ(t, out.String(), test.want, "regions %v variant %v", test.regions, variant)
		}
	}
}

func TestFetchBED(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()
	opts := refseq.DefaultOpts
	opts.FastaPath = writeTestReference(t, tempDir)
	bedPath := filepath.Join(tempDir, "regions.bed")
	assert.NoError(t, ioutil.WriteFile(bedPath, []byte("chr1\t0\t4\nchr1\t2\t6\nMT\t8\t10\n"), 0644))

	flags := testFetchFlags("+", 60)
	*flags.bed = bedPath
	var out bytes.Buffer
	assert.NoError(t, fetch(ctx, opts, flags, []string{"chr1:1-2"}, &out))
	expect.EQ(t, out.String(), ">chr1:1-2\nAC\n>chr1:1-4\nACGT\n>chr1:3-6\nGTAC\n>MT:9-10\nac\n")

	*flags.mergeBED = true
	out.Reset()
	assert.NoError(t, fetch(ctx, opts, flags, nil, &out))
	expect.EQ(t, out.String(), ">chr1:1-6\nACGTAC\n>MT:9-10\nac\n")

	*flags.bed = filepath.Join(tempDir, "missing.bed")
	expect.NotNil(t, fetch(ctx, opts, flags, nil, &out))
}

func TestFetchErrors(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()
	opts := refseq.DefaultOpts
	opts.FastaPath = writeTestReference(t, tempDir)

	var out bytes.Buffer
	err := fetch(ctx, opts, testFetchFlags("+", 60), []string{"chr2:1-10"}, &out)
	expect.True(t, errors.Is(errors.NotExist, err), err)
	err = fetch(ctx, opts, testFetchFlags("+", 60), []string{"chr1:5-2"}, &out)
	expect.True(t, errors.Is(errors.Invalid, err), err)
	err = fetch(ctx, opts, testFetchFlags("x", 60), []string{"chr1:1-2"}, &out)
	expect.True(t, errors.Is(errors.Invalid, err), err)
	err = fetch(ctx, opts, testFetchFlags("+", 60), []string{"chr1:10-20"}, &out)
	expect.NotNil(t, err)
	expect.EQ(t, out.Len(), 0)
}

func TestPrintDict(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	opts := refseq.DefaultOpts
	opts.FastaPath = writeTestReference(t, tempDir)

	var out bytes.Buffer
	assert.NoError(t, printDict(vcontext.Background(), opts, &out))
	expect.EQ(t, out.String(), "#id\tname\tlength\taliases\n"+
		"0\tchr1\t17\t1,chr1\n"+
		"1\tchrM\t10\tM,MT,chrM,chrMT\n")
}
