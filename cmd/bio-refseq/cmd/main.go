package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/refseq/encoding/fasta"
	"github.com/grailbio/refseq/encoding/seqdict"
	"github.com/grailbio/refseq/refseq"
	"v.io/x/lib/cmdline"
)

// accessorFlags are the flags shared by commands that open a reference.
type accessorFlags struct {
	index, dict, variant *string
	requireMito, lenient *bool
}

func newAccessorFlags(cmd *cmdline.Command) accessorFlags {
	return accessorFlags{
		index:       cmd.Flags.String("index", "", "FASTA index path. By default set to fapath + .fai"),
		dict:        cmd.Flags.String("dict", "", "Sequence dictionary path. By default set to fapath + .dict"),
		variant:     cmd.Flags.String("variant", refseq.DefaultOpts.Variant.String(), "Fetch strategy, either 'single' or 'caching'"),
		requireMito: cmd.Flags.Bool("require-mito", refseq.DefaultOpts.RequireMitochondrial, "Fail if the reference has no M or MT contig"),
		lenient:     cmd.Flags.Bool("lenient", refseq.DefaultOpts.LenientReverseComplement, "Write N for unknown bases when reverse complementing, instead of failing"),
	}
}

func (f accessorFlags) opts(fastaPath string) (refseq.Opts, error) {
	opts := refseq.DefaultOpts
	opts.FastaPath = fastaPath
	opts.IndexPath = *f.index
	opts.DictPath = *f.dict
	opts.RequireMitochondrial = *f.requireMito
	opts.LenientReverseComplement = *f.lenient
	var err error
	opts.Variant, err = refseq.ParseVariant(*f.variant)
	return opts, err
}

func newCmdFetch() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "fetch",
		Short: "Print reference subsequences in FASTA format",
		Long: `
Each region is either 'contig', 'contig:pos' or 'contig:begin-end', where
[begin,end] is a 1-based closed interval, as in samtools.  Contig names may use
either the "chr"-prefixed or the bare form, and M and MT are interchangeable.`,
		ArgsName: "fapath [region...]",
	}
	af := newAccessorFlags(cmd)
	flags := fetchFlags{
		strand:      cmd.Flags.String("strand", "+", "Strand to report, '+' or '-'. Bases on '-' are reverse complemented"),
		lineWidth:   cmd.Flags.Int("line-width", 60, "Bases per output line; 0 disables wrapping"),
		parallelism: cmd.Flags.Int("parallelism", 0, "Maximum number of regions fetched concurrently; 0 = one per region"),
		bed:         cmd.Flags.String("bed", "", "BED file of additional regions to fetch, after those on the command line"),
		mergeBED:    cmd.Flags.Bool("merge-bed", false, "Merge touching or overlapping BED intervals; the BED must be sorted"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 1 || (len(argv) == 1 && *flags.bed == "") {
			return fmt.Errorf("fetch takes fapath and at least one region or -bed, but got %v", argv)
		}
		opts, err := af.opts(argv[0])
		if err != nil {
			return err
		}
		return fetch(vcontext.Background(), opts, flags, argv[1:], env.Stdout)
	})
	return cmd
}

func newCmdDict() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "dict",
		Short:    "Print the contig dictionary of a reference as TSV",
		ArgsName: "fapath",
	}
	af := newAccessorFlags(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("dict takes one pathname argument, but got %v", argv)
		}
		opts, err := af.opts(argv[0])
		if err != nil {
			return err
		}
		return printDict(vcontext.Background(), opts, env.Stdout)
	})
	return cmd
}

func newCmdFaidx() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "faidx",
		Short:    "Create a .fai index for a FASTA file. This command is a clone of 'samtools faidx'.",
		ArgsName: "fapath",
	}
	out := cmd.Flags.String("out", "", "Output path. By default set to fapath + .fai")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("faidx takes one pathname argument, but got %v", argv)
		}
		path, err := fasta.GenerateIndexFile(vcontext.Background(), argv[0], *out)
		if err == nil {
			fmt.Fprintln(env.Stderr, "wrote", path)
		}
		return err
	})
	return cmd
}

func newCmdCreateDict() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "createdict",
		Short:    "Create a sequence dictionary for a FASTA file, like 'picard CreateSequenceDictionary'",
		ArgsName: "fapath",
	}
	out := cmd.Flags.String("out", "", "Output path. By default set to fapath + .dict")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("createdict takes one pathname argument, but got %v", argv)
		}
		path, err := seqdict.GenerateFile(vcontext.Background(), argv[0], *out)
		if err == nil {
			fmt.Fprintln(env.Stderr, "wrote", path)
		}
		return err
	})
	return cmd
}

// Run runs the bio-refseq command line.
func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-refseq",
			Short:    "Tools for reading indexed reference FASTA files",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdFetch(),
				newCmdDict(),
				newCmdFaidx(),
				newCmdCreateDict(),
			},
		})
}
