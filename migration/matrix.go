// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package migration implements migration matrices:
// the number of lineages of a phylogeny,
// at each year,
// that move between two locations.
//
// A branch whose location differs
// from the location of its parent node
// is counted as a transition
// over its entire length.
package migration

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Errors returned when building a migration matrix.
var (
	ErrLocation    = errors.New("invalid location")
	ErrMissingNode = errors.New("node not found")
	ErrNoParent    = errors.New("parent location not found")
	ErrYearRange   = errors.New("year out of range")
)

// Sep is the separator between the source
// and destination location
// in a transition label.
const Sep = "_to_"

// Label returns the label of a transition.
func Label(from, to string) string {
	return from + Sep + to
}

// Matrix is a migration matrix.
// Each row is a transition between two locations
// (including transitions to the same location),
// and each column is a year.
type Matrix struct {
	locs  []string
	index map[string]int
	first int
	cells [][]int
}

// NewMatrix creates a new migration matrix
// for a set of locations,
// from the first to the last year
// (inclusive).
func NewMatrix(locs []string, first, last int) *Matrix {
	index := make(map[string]int, len(locs))
	for i, l := range locs {
		index[l] = i
	}
	cells := make([][]int, len(locs)*len(locs))
	for i := range cells {
		cells[i] = make([]int, last-first+1)
	}
	return &Matrix{
		locs:  locs,
		index: index,
		first: first,
		cells: cells,
	}
}

func (m *Matrix) row(from, to string) (int, error) {
	f, ok := m.index[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q to %q", ErrLocation, from, to)
	}
	t, ok := m.index[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q to %q", ErrLocation, from, to)
	}
	return f*len(m.locs) + t, nil
}

// Add adds a branch that moves
// from a location to another,
// that lives from the start year
// to the end year
// (inclusive).
func (m *Matrix) Add(from, to string, start, end int) error {
	r, err := m.row(from, to)
	if err != nil {
		return err
	}
	last := m.first + len(m.cells[r]) - 1
	if start < m.first || end > last {
		return fmt.Errorf("%w: branch %d-%d, matrix %d-%d", ErrYearRange, start, end, m.first, last)
	}
	for y := start; y <= end; y++ {
		m.cells[r][y-m.first]++
	}
	return nil
}

// Count returns the number of lineages
// moving between two locations
// at a given year.
func (m *Matrix) Count(from, to string, year int) int {
	r, err := m.row(from, to)
	if err != nil {
		return 0
	}
	y := year - m.first
	if y < 0 || y >= len(m.cells[r]) {
		return 0
	}
	return m.cells[r][y]
}

// Locations returns the locations of the matrix.
func (m *Matrix) Locations() []string {
	return append([]string(nil), m.locs...)
}

// Labels returns the transition labels
// in row order.
func (m *Matrix) Labels() []string {
	ls := make([]string, 0, len(m.cells))
	for _, f := range m.locs {
		for _, t := range m.locs {
			ls = append(ls, Label(f, t))
		}
	}
	return ls
}

// Years returns the years of the matrix.
func (m *Matrix) Years() []int {
	if len(m.cells) == 0 {
		return nil
	}
	ys := make([]int, len(m.cells[0]))
	for i := range ys {
		ys[i] = m.first + i
	}
	return ys
}

// Series returns the counts of a transition
// for each year.
func (m *Matrix) Series(from, to string) []float64 {
	r, err := m.row(from, to)
	if err != nil {
		return nil
	}
	s := make([]float64, len(m.cells[r]))
	for i, c := range m.cells[r] {
		s[i] = float64(c)
	}
	return s
}

// Totals returns the number of lineages alive
// at each year
// (i.e., the sum of all transitions).
func (m *Matrix) Totals() []float64 {
	tot := make([]float64, len(m.Years()))
	for _, f := range m.locs {
		for _, t := range m.locs {
			floats.Add(tot, m.Series(f, t))
		}
	}
	return tot
}

// WriteCSV writes a migration matrix as a CSV file.
// The first row contains the years,
// and each other row a transition.
func (m *Matrix) WriteCSV(w io.Writer) error {
	tab := csv.NewWriter(w)

	years := m.Years()
	header := make([]string, 0, len(years)+1)
	header = append(header, "")
	for _, y := range years {
		header = append(header, strconv.Itoa(y))
	}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, lb := range m.Labels() {
		row := make([]string, 0, len(years)+1)
		row = append(row, lb)
		for _, c := range m.cells[i] {
			row = append(row, strconv.Itoa(c))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// ReadCSV reads a migration matrix
// from a CSV file.
//
// The header must contain consecutive years,
// and there must be a row for each pair of locations,
// ordered by source location,
// and then by destination location.
func ReadCSV(r io.Reader) (*Matrix, error) {
	tab := csv.NewReader(r)

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	if len(head) < 2 {
		return nil, fmt.Errorf("header: expecting at least one year")
	}
	first, err := strconv.Atoi(strings.TrimSpace(head[1]))
	if err != nil {
		return nil, fmt.Errorf("header: year %q: %v", head[1], err)
	}
	for i, h := range head[1:] {
		y, err := strconv.Atoi(strings.TrimSpace(h))
		if err != nil {
			return nil, fmt.Errorf("header: year %q: %v", h, err)
		}
		if y != first+i {
			return nil, fmt.Errorf("header: year %d: %w: want %d", y, ErrYearRange, first+i)
		}
	}

	var labels []string
	var rows [][]int
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		cs := make([]int, 0, len(row)-1)
		for _, v := range row[1:] {
			c, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("on row %d: transition %q: %v", ln, row[0], err)
			}
			cs = append(cs, c)
		}
		labels = append(labels, row[0])
		rows = append(rows, cs)
	}

	n := 0
	for n*n < len(rows) {
		n++
	}
	if n*n != len(rows) {
		return nil, fmt.Errorf("got %d transitions, want a squared number", len(rows))
	}

	// location names are taken from the self transitions
	locs := make([]string, n)
	for i := range locs {
		lb := labels[i*n+i]
		sz := (len(lb) - len(Sep)) / 2
		if sz <= 0 || lb[sz:len(lb)-sz] != Sep || lb[:sz] != lb[len(lb)-sz:] {
			return nil, fmt.Errorf("transition %q: %w: expecting a self transition", lb, ErrLocation)
		}
		locs[i] = lb[:sz]
	}

	m := NewMatrix(locs, first, first+len(head)-2)
	for i, lb := range m.Labels() {
		if labels[i] != lb {
			return nil, fmt.Errorf("transition %q: %w: want %q", labels[i], ErrLocation, lb)
		}
		copy(m.cells[i], rows[i])
	}
	return m, nil
}
