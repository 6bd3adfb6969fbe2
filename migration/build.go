// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package migration

import (
	"fmt"
	"math"

	"github.com/js-arias/epigeo/nodeinfo"
	"github.com/js-arias/epigeo/phylo"
)

// Continents are the default locations
// of a fixed migration matrix.
var Continents = []string{
	"Africa",
	"EastAsia",
	"Eurasia",
	"NorthAmr",
	"SouthAmr",
}

// Fixed builds a migration matrix
// for a fixed set of locations.
//
// Years are indexed from the root of the tree
// (year 0)
// to the youngest terminal.
// The last year of a branch is
// ceil(root height) - ceil(node height),
// and its first year is
// the last year minus ceil(branch length).
func Fixed(t *phylo.Tree, info *nodeinfo.Table, locs []string) (*Matrix, error) {
	rh := math.Ceil(t.Height())
	m := NewMatrix(locs, 0, int(rh))

	place := func(in nodeinfo.Info) (int, int) {
		end := int(rh - math.Ceil(in.Height))
		start := end - int(math.Ceil(in.Length))
		return start, end
	}
	if err := fill(m, t, info, place); err != nil {
		return nil, err
	}
	return m, nil
}

// Calendar builds a migration matrix
// using calendar years.
//
// The locations are all locations defined in the node table.
// The most recent year is taken from the isolate names
// (see nodeinfo.Table.MostRecentYear),
// and the year of the root is
// the most recent year minus ceil(root height).
// The last year of a branch is
// the root year plus ceil(root height) - ceil(node height),
// and its first year is
// the last year minus floor(branch length).
func Calendar(t *phylo.Tree, info *nodeinfo.Table) (*Matrix, error) {
	recent, err := info.MostRecentYear()
	if err != nil {
		return nil, err
	}
	rh := math.Ceil(t.Height())
	root := recent - int(rh)
	m := NewMatrix(info.Locations(), root, recent)

	place := func(in nodeinfo.Info) (int, int) {
		end := int(rh - math.Ceil(in.Height))
		start := end - int(math.Floor(in.Length))
		return start + root, end + root
	}
	if err := fill(m, t, info, place); err != nil {
		return nil, err
	}
	return m, nil
}

func fill(m *Matrix, t *phylo.Tree, info *nodeinfo.Table, place func(nodeinfo.Info) (int, int)) error {
	for _, n := range t.Preorder() {
		if n.IsRoot() {
			continue
		}

		in, ok := info.Get(n.Name)
		if !ok {
			return fmt.Errorf("node %q: %w", n.Name, ErrMissingNode)
		}
		if math.IsNaN(in.Height) || math.IsNaN(in.Length) {
			return fmt.Errorf("node %q: undefined height or length", n.Name)
		}

		p, ok := info.Get(n.Parent.Name)
		if !ok {
			return fmt.Errorf("node %q: parent %q: %w", n.Name, n.Parent.Name, ErrNoParent)
		}

		start, end := place(in)
		if err := m.Add(p.Location, in.Location, start, end); err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
	}
	return nil
}
