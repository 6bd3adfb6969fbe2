// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export implements a command to export a tree file
// as a tab-delimited time-calibrated tree.
package export

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/phylo"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `export [--name <tree-name>] [--scale <value>]
	[-o|--output <file>] <tree-file>`,
	Short: "export a tree as a time-calibrated tree file",
	Long: `
Command export reads a tree file, in Newick or NEXUS format, and writes it as
a tab-delimited time-calibrated tree file, the tree format used by PhyGeo. In
that format each node has an age (in years) and node IDs, so the tree can be
processed by tools that do not understand parenthetical trees.

The argument of the command is the name of the tree file.

By default, branch lengths are expected in years. Use the flag --scale to
define the number of years of each branch length unit. The age of the root is
the largest distance between the root and any terminal.

By default, the tree will be named after the input file. Use the flag --name
to define a different name.

By default, the output is printed in the standard output. Use the flag -o,
or --output, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var scale float64
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "name", "", "")
	c.Flags().Float64Var(&scale, "scale", 1, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

// millionYears is the length unit
// of the timetree Newick importer.
const millionYears = 1_000_000

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}
	if scale <= 0 {
		return c.UsageError("flag --scale must be positive")
	}
	if treeName == "" {
		treeName = args[0]
	}

	t, err := readTree(args[0])
	if err != nil {
		return err
	}

	tc, err := convert(t, treeName)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	w := c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := tc.TSV(bw); err != nil {
		return fmt.Errorf("while writing tree %q: %v", treeName, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing tree %q: %v", treeName, err)
	}
	return nil
}

func readTree(name string) (*phylo.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := phylo.Read(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

func convert(t *phylo.Tree, name string) (*timetree.Collection, error) {
	var nw strings.Builder
	if err := t.Newick(&nw, phylo.NewickOptions{Scale: millionYears / scale}); err != nil {
		return nil, err
	}

	tc, err := timetree.Newick(strings.NewReader(nw.String()), name, 0)
	if err != nil {
		return nil, err
	}

	terms := make(map[string]bool)
	for _, tn := range tc.Names() {
		for _, tax := range tc.Tree(tn).Terms() {
			terms[tax] = true
		}
	}
	// terminal names might be canonized by the importer
	// so only the number of terminals is compared
	src := make(map[string]bool)
	for _, tax := range t.Terms() {
		src[tax] = true
	}
	if len(terms) != len(src) {
		return nil, fmt.Errorf("got %d terminals after conversion, want %d", len(terms), len(src))
	}
	return tc, nil
}
