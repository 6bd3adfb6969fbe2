// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package alignment implements a multiple sequence alignment
// of nucleotide sequences
// read from (and written to) FASTA files.
package alignment

import (
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ErrLength is returned when the sequences of an alignment
// have different lengths.
var ErrLength = errors.New("sequences with different length")

// A Seq is an aligned sequence.
type Seq struct {
	ID   string
	Desc string
	Seq  []byte
}

// Alignment is an ordered collection of aligned sequences.
type Alignment struct {
	seqs []*Seq
}

// New creates a new empty alignment.
func New() *Alignment {
	return &Alignment{}
}

// Add adds a sequence to the alignment.
// All sequences of an alignment must have the same length.
func (a *Alignment) Add(id, desc string, s []byte) error {
	if len(a.seqs) > 0 && len(s) != a.Len() {
		return fmt.Errorf("sequence %q: %w: got %d, want %d", id, ErrLength, len(s), a.Len())
	}
	a.seqs = append(a.seqs, &Seq{
		ID:   id,
		Desc: desc,
		Seq:  s,
	})
	return nil
}

// Append appends a base to each sequence of the alignment.
// The number of bases must be equal to the number of sequences.
func (a *Alignment) Append(bases []byte) {
	if len(bases) != len(a.seqs) {
		panic("alignment: invalid number of bases")
	}
	for i, s := range a.seqs {
		s.Seq = append(s.Seq, bases[i])
	}
}

// Column returns the bases at the given position
// of the alignment.
// Positions are 1-based.
func (a *Alignment) Column(pos int) []byte {
	col := make([]byte, 0, len(a.seqs))
	for _, s := range a.seqs {
		col = append(col, s.Seq[pos-1])
	}
	return col
}

// Len returns the number of columns of the alignment.
func (a *Alignment) Len() int {
	if len(a.seqs) == 0 {
		return 0
	}
	return len(a.seqs[0].Seq)
}

// NumSeq returns the number of sequences in the alignment.
func (a *Alignment) NumSeq() int {
	return len(a.seqs)
}

// Seqs returns the sequences of the alignment,
// in input order.
func (a *Alignment) Seqs() []*Seq {
	return a.seqs
}

// IDs returns the identifiers of the sequences,
// in input order.
func (a *Alignment) IDs() []string {
	ids := make([]string, 0, len(a.seqs))
	for _, s := range a.seqs {
		ids = append(ids, s.ID)
	}
	return ids
}

// Read reads an alignment from a FASTA file.
func Read(r io.Reader) (*Alignment, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))

	a := New()
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("unexpected sequence type %T", sc.Seq())
		}
		b := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			b[i] = byte(l)
		}
		if err := a.Add(s.ID, s.Desc, b); err != nil {
			return nil, err
		}
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("while reading sequence %d: %v", a.NumSeq()+1, err)
	}
	return a, nil
}

// Width is the line width used for FASTA output.
const Width = 60

// Write writes an alignment as a FASTA file.
func (a *Alignment) Write(w io.Writer) error {
	fw := fasta.NewWriter(w, Width)
	for _, s := range a.seqs {
		ls := make(alphabet.Letters, len(s.Seq))
		for i, b := range s.Seq {
			ls[i] = alphabet.Letter(b)
		}
		ns := linear.NewSeq(s.ID, ls, alphabet.DNAgapped)
		ns.Desc = s.Desc
		if _, err := fw.Write(ns); err != nil {
			return fmt.Errorf("while writing sequence %q: %v", s.ID, err)
		}
	}
	return nil
}
