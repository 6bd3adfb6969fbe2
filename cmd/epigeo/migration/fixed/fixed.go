// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fixed implements a command to build
// a migration matrix for a fixed set of locations.
package fixed

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/migration"
	"github.com/js-arias/epigeo/nodeinfo"
	"github.com/js-arias/epigeo/phylo"
)

var Command = &command.Command{
	Usage: `fixed [--locations <list>]
	<tree-file> <node-file> <output-file>`,
	Short: "build a migration matrix for a fixed set of locations",
	Long: `
Command fixed reads a time-calibrated tree, and a table with the height,
branch length, and location of each node of the tree, and counts, for each
year of the tree, the number of branches that go from one location to
another.

The first argument of the command is the tree file, in Newick or NEXUS
format. Internal nodes must be labeled (see 'epigeo tree number').

The second argument is the node file, a CSV file with a header and the
following columns: node name, node height, branch length, and location. See
'epigeo help node-files'.

The third argument is the name of the output file. It is a CSV file with a
row for each pair of locations (for example "Africa_to_Eurasia") and a column
for each year, counted from the root of the tree (year 0).

A branch is counted for its entire length, from year
ceil(root height) - ceil(node height) - ceil(branch length), to year
ceil(root height) - ceil(node height).

As both the node height and the branch length are rounded up, a branch that
starts at the root, with fractional height and length, is placed before year
0, and the command fails with a year out of range error. This is the usual case for
trees with fractional heights (for example, BEAST summary trees). For those
trees use 'epigeo migration calendar', which uses the floor of the branch
length.

By default, the locations are Africa, EastAsia, Eurasia, NorthAmr, and
SouthAmr. Use the flag --locations with a comma-separated list to define a
different set of locations. Any node with a location not in the list is an
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var locsFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&locsFlag, "locations", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 3 {
		return c.UsageError("expecting tree, node, and output files")
	}

	locs := migration.Continents
	if locsFlag != "" {
		locs = nil
		for _, l := range strings.Split(locsFlag, ",") {
			l = strings.TrimSpace(l)
			if l == "" {
				continue
			}
			locs = append(locs, l)
		}
	}

	t, err := readTree(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "tree height: %.6f\n", t.Height())

	info, err := readNodes(args[1])
	if err != nil {
		return err
	}

	m, err := migration.Fixed(t, info, locs)
	if err != nil {
		return err
	}

	if err := writeMatrix(args[2], m); err != nil {
		return err
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

func readNodes(name string) (*nodeinfo.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := nodeinfo.Read(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

func writeMatrix(name string, m *migration.Matrix) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := m.WriteCSV(bw); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
