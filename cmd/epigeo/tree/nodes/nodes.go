// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nodes implements a command to print
// the nodes of a tree file.
package nodes

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/phylo"
)

var Command = &command.Command{
	Usage: "nodes <tree-file>",
	Short: "print the nodes of a tree",
	Long: `
Command nodes reads a tree file, in Newick or NEXUS format, and prints its
nodes, in preorder, in the standard output.

The output is a tab-delimited table with the following columns:

	- node    the name of the node
	- parent  the name of the parent node (empty for the root)
	- length  the length of the branch to the parent
	- depth   the distance from the root
	- term    "true" if the node is a terminal

Each name of this list must be defined in the node files used to build
migration matrices.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := phylo.Read(f)
	if err != nil {
		return fmt.Errorf("while reading file %q: %v", args[0], err)
	}

	tab := csv.NewWriter(c.Stdout())
	tab.Comma = '\t'
	if err := tab.Write([]string{"node", "parent", "length", "depth", "term"}); err != nil {
		return err
	}
	for _, n := range t.Preorder() {
		var parent string
		if !n.IsRoot() {
			parent = n.Parent.Name
		}
		row := []string{
			n.Name,
			parent,
			strconv.FormatFloat(n.Length, 'f', 6, 64),
			strconv.FormatFloat(phylo.Depth(n), 'f', 6, 64),
			strconv.FormatBool(n.IsTerm()),
		}
		if err := tab.Write(row); err != nil {
			return err
		}
	}
	tab.Flush()
	return tab.Error()
}
