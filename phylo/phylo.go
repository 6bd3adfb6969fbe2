// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylo implements phylogenetic trees
// with named nodes
// and branch lengths,
// as read from Newick or NEXUS files.
//
// Unlike time-calibrated trees,
// the nodes of a phylo tree are identified by their names,
// so internal nodes must be labeled
// when they are used to link external data.
package phylo

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// A Node is a node of a phylogenetic tree.
type Node struct {
	Name string

	// Length of the branch
	// that connects the node with its parent.
	Length float64

	Parent   *Node
	Children []*Node
}

// IsRoot returns true if the node is the root of a tree.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// IsTerm returns true if the node is a terminal.
func (n *Node) IsTerm() bool {
	return len(n.Children) == 0
}

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	Name string
	Root *Node
}

// Preorder returns the nodes of the tree in preorder:
// each node is returned before its descendants,
// and children are visited in input order.
func (t *Tree) Preorder() []*Node {
	var ls []*Node
	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ls = append(ls, n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return ls
}

// Height returns the largest distance
// from the root to any terminal.
// The branch length of the root is ignored.
func (t *Tree) Height() float64 {
	return height(t.Root, 0)
}

func height(n *Node, d float64) float64 {
	if n.IsTerm() {
		return d
	}
	var h float64
	for _, c := range n.Children {
		h = max(h, height(c, d+c.Length))
	}
	return h
}

// Depth returns the distance from the root
// to the given node.
func Depth(n *Node) float64 {
	var d float64
	for ; !n.IsRoot(); n = n.Parent {
		d += n.Length
	}
	return d
}

// Terms returns the sorted names of the terminals
// of the tree.
func (t *Tree) Terms() []string {
	var terms []string
	for _, n := range t.Preorder() {
		if n.IsTerm() {
			terms = append(terms, n.Name)
		}
	}
	slices.Sort(terms)
	return terms
}

// Node returns the first node with the given name
// (in preorder).
func (t *Tree) Node(name string) *Node {
	for _, n := range t.Preorder() {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// NewickOptions control the output of a Newick tree.
type NewickOptions struct {
	// If set, internal node names are written.
	Internal bool

	// Scale divides each branch length.
	// If zero, lengths are written unchanged.
	Scale float64
}

// Newick writes a tree in Newick format.
func (t *Tree) Newick(w io.Writer, opt NewickOptions) error {
	var b strings.Builder
	writeNode(&b, t.Root, opt)
	b.WriteString(";\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("while writing tree %q: %v", t.Name, err)
	}
	return nil
}

func writeNode(b *strings.Builder, n *Node, opt NewickOptions) {
	if !n.IsTerm() {
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNode(b, c, opt)
		}
		b.WriteByte(')')
	}
	if n.IsTerm() || opt.Internal {
		b.WriteString(quote(n.Name))
	}
	if n.IsRoot() {
		return
	}
	l := n.Length
	if opt.Scale != 0 {
		l /= opt.Scale
	}
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(l, 'g', -1, 64))
}

func quote(name string) string {
	if !strings.ContainsAny(name, "()[],:;' \t\n") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
