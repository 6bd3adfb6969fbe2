// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nodeinfo implements a table of node annotations
// of a time-calibrated phylogeny
// (for example, as summarized from a BEAST analysis).
package nodeinfo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// NA is the value used for missing data.
const NA = "NA"

// ErrNoYear is returned when no isolate name
// provides a sampling year.
var ErrNoYear = errors.New("no isolate year")

// Info is the annotation of a node.
type Info struct {
	Name string

	// Height is the distance from the node
	// to the youngest terminal of the tree.
	Height float64

	// Length of the branch to the parent node.
	Length float64

	// Location of the node.
	Location string

	// Probability of the assigned location.
	Prob float64

	// Isolate name.
	// It is NA for internal nodes.
	Isolate string
}

// Table is a collection of node annotations.
type Table struct {
	nodes map[string]Info
	names []string
}

// New creates an empty table.
func New() *Table {
	return &Table{
		nodes: make(map[string]Info),
	}
}

// Add adds a node annotation.
// If the node is already defined,
// the annotation will be replaced.
func (t *Table) Add(in Info) {
	if _, ok := t.nodes[in.Name]; !ok {
		t.names = append(t.names, in.Name)
	}
	t.nodes[in.Name] = in
}

// Read reads a node table from a CSV file.
//
// The file must have a header,
// and the columns are read by position:
//
//   - node, the name of the node
//   - height, the distance to the youngest terminal
//   - length, the length of the branch to the parent
//   - location, the assigned location
//   - prob, the probability of the location (optional)
//   - isolate, the isolate name (optional)
//
// Missing numerical values can be indicated with "NA".
//
// Here is an example file:
//
//	node,height,length,location,prob,isolate
//	1,0.0,12.5,Eurasia,1.0,2010_TB01
//	2,3.0,9.5,Africa,1.0,2007_TB02
//	3,12.5,30.2,Eurasia,0.85,NA
//	4,42.7,NA,Eurasia,0.93,NA
func Read(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.FieldsPerRecord = -1
	tab.TrimLeadingSpace = true

	if _, err := tab.Read(); err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	t := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("on row %d: got %d fields, want at least 4", ln, len(row))
		}

		in := Info{
			Name:     strings.TrimSpace(row[0]),
			Location: strings.TrimSpace(row[3]),
			Prob:     math.NaN(),
			Isolate:  NA,
		}
		if in.Name == "" {
			continue
		}

		if in.Height, err = parseValue(row[1]); err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "height", err)
		}
		if in.Length, err = parseValue(row[2]); err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "length", err)
		}
		if len(row) > 4 {
			if in.Prob, err = parseValue(row[4]); err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, "prob", err)
			}
		}
		if len(row) > 5 {
			if iso := strings.TrimSpace(row[5]); iso != "" {
				in.Isolate = iso
			}
		}
		t.Add(in)
	}
	return t, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NA) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Get returns the annotation of a node.
func (t *Table) Get(name string) (Info, bool) {
	in, ok := t.nodes[name]
	return in, ok
}

// Len returns the number of annotated nodes.
func (t *Table) Len() int {
	return len(t.nodes)
}

// Names returns the names of the annotated nodes,
// in input order.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Locations returns the sorted list
// of locations used in the table.
func (t *Table) Locations() []string {
	set := make(map[string]bool)
	for _, in := range t.nodes {
		set[in.Location] = true
	}
	ls := make([]string, 0, len(set))
	for l := range set {
		ls = append(ls, l)
	}
	slices.Sort(ls)
	return ls
}

// MostRecentYear returns the sampling year
// of the most recent isolate.
//
// Isolate names are expected to start
// with the sampling year,
// so the most recent isolate
// is the last one in sorted order.
func (t *Table) MostRecentYear() (int, error) {
	var last string
	for _, in := range t.nodes {
		if in.Isolate == "" || strings.EqualFold(in.Isolate, NA) {
			continue
		}
		if in.Isolate > last {
			last = in.Isolate
		}
	}
	if last == "" {
		return 0, ErrNoYear
	}
	if len(last) < 4 {
		return 0, fmt.Errorf("isolate %q: %w", last, ErrNoYear)
	}
	y, err := strconv.Atoi(last[:4])
	if err != nil {
		return 0, fmt.Errorf("isolate %q: %w: %v", last, ErrNoYear, err)
	}
	return y, nil
}
