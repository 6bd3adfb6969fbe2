// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package curate implements the curation
// of a core SNP alignment.
//
// A SNP column is kept if it is outside
// of the excluded genomic regions,
// it has at least two different informative bases,
// and the proportion of missing data
// (gaps and undetermined bases)
// is low.
// Kept columns are annotated with the bases
// found in one or more outgroups
// at the same genome coordinate.
package curate

import (
	"errors"
	"fmt"

	"github.com/js-arias/epigeo/alignment"
	"github.com/js-arias/epigeo/mask"
	"github.com/js-arias/epigeo/snptab"
)

// Default values for curation options.
const (
	DefaultMinBases   = 2
	DefaultMaxMissing = 0.01
)

// Errors returned by curation.
var (
	// ErrLength is returned when the SNP table
	// does not have a row for each alignment column.
	ErrLength = errors.New("table rows and alignment columns differ")

	// ErrOutgroup is returned when a coordinate
	// is outside of an outgroup sequence.
	ErrOutgroup = errors.New("coordinate outside outgroup")
)

// Options are the parameters used for curation.
type Options struct {
	// Minimum number of distinct informative bases
	// in a column.
	MinBases int

	// A column is kept only if its proportion
	// of missing data is below this value.
	MaxMissing float64
}

// DefaultOptions returns the default curation options.
func DefaultOptions() Options {
	return Options{
		MinBases:   DefaultMinBases,
		MaxMissing: DefaultMaxMissing,
	}
}

// Stats are the counts of a curation.
type Stats struct {
	Total       int // Number of columns
	Masked      int // Columns inside an excluded region
	Monomorphic int // Columns with too few informative bases
	Missing     int // Columns with too much missing data
	Kept        int
}

// Result is the result of a curation.
type Result struct {
	// Alignment with the samples
	// and the outgroups
	// only for the kept columns.
	Alignment *alignment.Alignment

	// Table with the kept rows,
	// and the outgroup bases.
	Table *snptab.Table

	// Coordinates of the kept columns.
	Coords []int

	Stats Stats
}

// Curate curates an alignment of SNPs.
// The i-th row of the table
// is the description of the i-th column
// of the alignment.
func Curate(al *alignment.Alignment, tab *snptab.Table, outgroups *alignment.Alignment, m *mask.Mask, opt Options) (*Result, error) {
	if len(tab.Rows) != al.Len() {
		return nil, fmt.Errorf("%w: %d rows, %d columns", ErrLength, len(tab.Rows), al.Len())
	}

	out := alignment.New()
	for _, a := range []*alignment.Alignment{al, outgroups} {
		for _, s := range a.Seqs() {
			if err := out.Add(s.ID, s.Desc, nil); err != nil {
				return nil, err
			}
		}
	}

	nt := &snptab.Table{
		Trailing: tab.Trailing,
		Header:   snptab.Insert(tab.Header, tab.Trailing, outgroups.IDs()...),
	}

	res := &Result{
		Alignment: out,
		Table:     nt,
	}
	cur := m.Cursor()
	for i, r := range tab.Rows {
		res.Stats.Total++
		if cur.Contains(r.Coord) {
			res.Stats.Masked++
			continue
		}

		col := al.Column(i + 1)
		bases, missing := Informative(col)
		if bases < opt.MinBases {
			res.Stats.Monomorphic++
			continue
		}
		if missing >= opt.MaxMissing {
			res.Stats.Missing++
			continue
		}

		og, err := outgroupBases(outgroups, r.Coord)
		if err != nil {
			return nil, err
		}
		ob := make([]string, len(og))
		for j, b := range og {
			ob[j] = string(b)
		}

		out.Append(append(col, og...))
		nt.Rows = append(nt.Rows, snptab.Row{
			Coord:  r.Coord,
			Fields: snptab.Insert(r.Fields, tab.Trailing, ob...),
		})
		res.Coords = append(res.Coords, r.Coord)
		res.Stats.Kept++
	}
	return res, nil
}

// Informative returns the number of distinct informative bases
// in an alignment column
// (ignoring case),
// and the proportion of missing data
// (gaps and undetermined bases).
func Informative(col []byte) (bases int, missing float64) {
	if len(col) == 0 {
		return 0, 0
	}

	set := make(map[byte]bool)
	var miss int
	for _, b := range col {
		if IsMissing(b) {
			miss++
			continue
		}
		set[upper(b)] = true
	}
	return len(set), float64(miss) / float64(len(col))
}

// IsMissing returns true if a base is a gap
// or an undetermined base.
func IsMissing(b byte) bool {
	switch b {
	case '-', 'N', 'n':
		return true
	}
	return false
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func outgroupBases(outgroups *alignment.Alignment, coord int) ([]byte, error) {
	bases := make([]byte, 0, outgroups.NumSeq())
	for _, s := range outgroups.Seqs() {
		if coord < 1 || coord > len(s.Seq) {
			return nil, fmt.Errorf("outgroup %q: coordinate %d: %w", s.ID, coord, ErrOutgroup)
		}
		bases = append(bases, s.Seq[coord-1])
	}
	return bases, nil
}
