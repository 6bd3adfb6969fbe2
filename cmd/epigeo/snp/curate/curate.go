// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package curate implements a command to curate
// a core SNP alignment.
package curate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/alignment"
	"github.com/js-arias/epigeo/curate"
	"github.com/js-arias/epigeo/mask"
	"github.com/js-arias/epigeo/snptab"
)

var Command = &command.Command{
	Usage: `curate [--tab <file>] [--fasta <file>]
	[--trailing <number>] [--missing <value>]
	<alignment> <snp-table> <outgroups> <exclusions>`,
	Short: "curate a core SNP alignment",
	Long: `
Command curate reads a core SNP alignment and its SNP table, removes the SNPs
that are in excluded genomic regions or that are uninformative, and adds the
bases of one or more outgroups to each retained SNP.

The command requires four arguments:

	- the core SNP alignment, as a FASTA file. Each column of the alignment
	  is a SNP.
	- the SNP table, as a tab-delimited file with a header. The second
	  column of the table is the genome coordinate of the SNP, and each row
	  describes a column of the alignment (in the same order).
	- the outgroup sequences, as a FASTA file. Sequences must be full
	  genomes, so the base of a SNP is read at its genome coordinate.
	- the excluded regions, as a BED-like file. The second and third
	  columns are the start and end of each excluded region (inclusive).

A SNP is retained if it is outside any excluded region, at least two
different bases (ignoring N and gaps) are found in the samples, and the
proportion of N and gaps is below 0.01. Use the flag --missing to set a
different proportion.

The output is a new SNP table, with the outgroup bases inserted before the
last four columns of the table, and a new alignment with the samples and the
outgroups with only the retained SNPs. By default the files are named
'core_script6.tab' and 'core_snp_alignment_script6.fasta'; use the flags
--tab and --fasta to define different names. Use the flag --trailing to
define a different number of annotation columns at the end of the table.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tabFile string
var fastaFile string
var trailing int
var missing float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&tabFile, "tab", "core_script6.tab", "")
	c.Flags().StringVar(&fastaFile, "fasta", "core_snp_alignment_script6.fasta", "")
	c.Flags().IntVar(&trailing, "trailing", snptab.DefaultTrailing, "")
	c.Flags().Float64Var(&missing, "missing", curate.DefaultMaxMissing, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 4 {
		return c.UsageError("expecting alignment, SNP table, outgroups, and exclusion files")
	}

	al, err := readAlignment(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "alignment %q: %d sequences, %d columns\n", args[0], al.NumSeq(), al.Len())

	tab, err := readTable(args[1])
	if err != nil {
		return err
	}

	og, err := readAlignment(args[2])
	if err != nil {
		return err
	}

	m, err := readMask(args[3])
	if err != nil {
		return err
	}

	opt := curate.DefaultOptions()
	opt.MaxMissing = missing
	res, err := curate.Curate(al, tab, og, m, opt)
	if err != nil {
		return err
	}

	outs := []output{
		{name: tabFile, write: res.Table.Write},
		{name: fastaFile, write: res.Alignment.Write},
	}
	if err := writeFiles(outs); err != nil {
		return err
	}

	st := res.Stats
	fmt.Fprintf(c.Stderr(), "columns: %d\n", st.Total)
	fmt.Fprintf(c.Stderr(), "\tin excluded regions: %d\n", st.Masked)
	fmt.Fprintf(c.Stderr(), "\tuninformative: %d\n", st.Monomorphic)
	fmt.Fprintf(c.Stderr(), "\ttoo much missing data: %d\n", st.Missing)
	fmt.Fprintf(c.Stderr(), "\tretained: %d\n", st.Kept)
	return nil
}

func readAlignment(name string) (*alignment.Alignment, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := alignment.Read(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return a, nil
}

func readTable(name string) (*snptab.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := snptab.Read(f, trailing)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

func readMask(name string) (*mask.Mask, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := mask.Read(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return m, nil
}

// An output is a file produced by the command.
type output struct {
	name  string
	write func(io.Writer) error
}

// writeFiles writes each output into a temporary file
// in the same directory,
// and renames them
// only after all of them are written.
func writeFiles(outs []output) (err error) {
	tmps := make([]string, 0, len(outs))
	defer func() {
		if err == nil {
			return
		}
		for _, t := range tmps {
			os.Remove(t)
		}
	}()

	for _, o := range outs {
		t, err := writeTemp(o)
		if t != "" {
			tmps = append(tmps, t)
		}
		if err != nil {
			return err
		}
	}
	for i, o := range outs {
		if err := os.Rename(tmps[i], o.name); err != nil {
			return fmt.Errorf("while writing to %q: %v", o.name, err)
		}
	}
	return nil
}

func writeTemp(o output) (name string, err error) {
	f, err := os.CreateTemp(filepath.Dir(o.name), "."+filepath.Base(o.name)+".*")
	if err != nil {
		return "", err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()
	if err := f.Chmod(0o644); err != nil {
		return f.Name(), err
	}

	bw := bufio.NewWriter(f)
	if err := o.write(bw); err != nil {
		return f.Name(), fmt.Errorf("while writing to %q: %v", o.name, err)
	}
	if err := bw.Flush(); err != nil {
		return f.Name(), fmt.Errorf("while writing to %q: %v", o.name, err)
	}
	return f.Name(), nil
}
