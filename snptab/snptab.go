// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package snptab implements reading and writing
// of core SNP tables.
//
// A core SNP table is a tab-delimited file
// (as produced by snippy-core)
// with a header row,
// a chromosome column,
// a coordinate column,
// the called bases of each sample,
// and a set of trailing annotation columns.
package snptab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// DefaultTrailing is the default number of annotation columns
// at the end of each row.
const DefaultTrailing = 4

// ErrShortRow is returned when a row has not enough fields.
var ErrShortRow = errors.New("not enough fields")

// A Row is a row of a SNP table.
type Row struct {
	// Coordinate of the SNP in the reference genome.
	Coord int

	// Fields of the row
	// (including the chromosome and coordinate columns).
	Fields []string
}

// Table is a core SNP table.
type Table struct {
	// Number of annotation fields
	// at the end of each row.
	Trailing int

	Header []string
	Rows   []Row
}

// Read reads a SNP table from a TSV file.
//
// The second column of the table must be the SNP coordinate.
// The last trailing columns of each row
// are considered annotation fields.
//
// Here is an example file
// (with four trailing columns):
//
//	CHR	POS	REF	S1	S2	LOCUS_TAG	GENE	PRODUCT	EFFECT
//	NC_000962	1849	C	C	A	Rv0001	dnaA	DnaA	missense
//	NC_000962	3446	T	T	C	Rv0002	dnaN	DnaN	synonymous
func Read(r io.Reader, trailing int) (*Table, error) {
	br := bufio.NewReader(r)

	t := &Table{Trailing: trailing}
	for ln := 1; ; ln++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if errors.Is(err, io.EOF) {
				break
			}
			continue
		}

		fields := strings.Split(line, "\t")
		if t.Header == nil {
			if len(fields) < trailing+2 {
				return nil, fmt.Errorf("header: %w: got %d, want at least %d", ErrShortRow, len(fields), trailing+2)
			}
			t.Header = fields
		} else {
			if len(fields) < trailing+2 {
				return nil, fmt.Errorf("on line %d: %w: got %d, want at least %d", ln, ErrShortRow, len(fields), trailing+2)
			}
			c, err := strconv.Atoi(strings.TrimSpace(fields[1]))
			if err != nil {
				return nil, fmt.Errorf("on line %d: coordinate %q: %v", ln, fields[1], err)
			}
			t.Rows = append(t.Rows, Row{
				Coord:  c,
				Fields: fields,
			})
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}
	if t.Header == nil {
		return nil, fmt.Errorf("while reading header: %v", io.ErrUnexpectedEOF)
	}
	return t, nil
}

// Insert returns a copy of the fields
// with the given values inserted
// just before the trailing annotation fields.
func Insert(fields []string, trailing int, vals ...string) []string {
	at := len(fields) - trailing
	return slices.Insert(slices.Clone(fields), at, vals...)
}

// Write writes the table as a TSV file.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n", strings.Join(t.Header, "\t")); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, r := range t.Rows {
		if _, err := fmt.Fprintf(bw, "%s\n", strings.Join(r.Fields, "\t")); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
