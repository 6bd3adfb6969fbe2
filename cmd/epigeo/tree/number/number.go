// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package number implements a command to add
// numerical labels to the internal nodes of a tree file.
package number

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/numbering"
)

var Command = &command.Command{
	Usage: "number [--skip] <input-tree> <output-tree>",
	Short: "add numbers to internal nodes of a tree file",
	Long: `
Command number reads a tree file, in Newick or NEXUS format, and adds a
number after each closing parenthesis (i.e., each internal node of the tree).

Numbers start after the largest node number already used in the file. A
node number is any node label made only of digits, either a terminal (as in
BEAST annotated trees, for example "12[&rate=0.1]") or an internal node
already labeled. Text inside comment brackets is ignored. If there are no
numbered nodes, the numbering starts at 1.

The command does not parse the tree, so it can be used directly on NEXUS
files. By default, every closing parenthesis receives a number, so running
the command twice on the same file produces double labels. Use the flag
--skip to leave unchanged the nodes that are already labeled with a number.

The first argument of the command is the input tree file, and the second
argument is the output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var skipFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&skipFlag, "skip", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting input and output tree files")
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	out, n := numbering.Insert(string(b), skipFlag)
	if err := writeTree(args[1], out); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%d nodes labeled\n", n)
	return nil
}

func writeTree(name, text string) (err error) {
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

	if _, err := io.WriteString(f, text); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
