// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package calendar implements a command to build
// a migration matrix using calendar years.
package calendar

import (
	"bufio"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/migration"
	"github.com/js-arias/epigeo/nodeinfo"
	"github.com/js-arias/epigeo/phylo"
)

var Command = &command.Command{
	Usage: "calendar <tree-file> <node-file> <output-file>",
	Short: "build a migration matrix using calendar years",
	Long: `
Command calendar reads a time-calibrated tree, and a table with the height,
branch length, location, and isolate name of each node of the tree, and
counts, for each calendar year, the number of branches that go from one
location to another.

The first argument of the command is the tree file, in Newick or NEXUS
format. Internal nodes must be labeled (see 'epigeo tree number').

The second argument is the node file, a CSV file with a header and the
following columns: node name, node height, branch length, location,
location probability, and isolate name. See 'epigeo help node-files'.

The locations are all the locations found in the node file. The year of the
most recent isolate is read from the first four characters of the isolate
names (for example, "2015_TB01"), and the year of the root is that year minus
the ceiling of the tree height.

The third argument is the name of the output file. It is a CSV file with a
row for each pair of locations (for example "Africa_to_Eurasia") and a column
for each calendar year, from the year of the root to the year of the most
recent isolate.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 3 {
		return c.UsageError("expecting tree, node, and output files")
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

	m, err := migration.Calendar(t, info)
	if err != nil {
		return err
	}
	ys := m.Years()
	fmt.Fprintf(c.Stderr(), "year of the root: %d\n", ys[0])
	fmt.Fprintf(c.Stderr(), "most recent year: %d\n", ys[len(ys)-1])

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
