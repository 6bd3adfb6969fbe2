// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mask implements a set of genomic intervals
// excluded from an analysis
// (for example, repetitive or problematic regions).
package mask

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/io/featio/bed"
	"golang.org/x/exp/slices"
)

// An Interval is an inclusive range of genome coordinates.
type Interval struct {
	Start int
	End   int
}

// Mask is a sorted set of non-overlapping intervals.
type Mask struct {
	iv []Interval
}

// New creates a mask from a set of intervals.
// Overlapping or adjacent intervals are merged.
func New(iv ...Interval) *Mask {
	m := &Mask{}
	for _, v := range iv {
		if v.End < v.Start {
			v.Start, v.End = v.End, v.Start
		}
		m.iv = append(m.iv, v)
	}
	slices.SortFunc(m.iv, func(a, b Interval) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	if len(m.iv) < 2 {
		return m
	}
	merged := m.iv[:1]
	for _, v := range m.iv[1:] {
		last := &merged[len(merged)-1]
		if v.Start <= last.End+1 {
			last.End = max(last.End, v.End)
			continue
		}
		merged = append(merged, v)
	}
	m.iv = merged
	return m
}

// Read reads a mask from a BED-like file.
//
// The second and third columns of each row
// are taken as the start and end
// of an inclusive interval.
// Comment lines,
// and track or browser lines,
// are ignored.
//
// Here is an example file:
//
//	# problematic regions
//	NC_000962.3	33582	33794	PE_PGRS
//	NC_000962.3	103710	104663	PPE
func Read(r io.Reader) (*Mask, error) {
	var buf bytes.Buffer
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("track")) || bytes.HasPrefix(line, []byte("browser")) {
			continue
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	br, err := bed.NewReader(&buf, 3)
	if err != nil {
		return nil, err
	}

	var iv []Interval
	for {
		f, err := br.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("on interval %d: %v", len(iv)+1, err)
		}
		iv = append(iv, interval(f))
	}
	return New(iv...), nil
}

func interval(f feat.Feature) Interval {
	return Interval{
		Start: f.Start(),
		End:   f.End(),
	}
}

// Contains returns true if a position
// is inside an interval of the mask.
func (m *Mask) Contains(pos int) bool {
	i := m.search(pos)
	return i < len(m.iv) && m.iv[i].Start <= pos
}

// search returns the index of the first interval
// that ends at or after pos.
func (m *Mask) search(pos int) int {
	i, _ := slices.BinarySearchFunc(m.iv, pos, func(v Interval, p int) int {
		return v.End - p
	})
	return i
}

// Intervals returns the intervals of the mask.
func (m *Mask) Intervals() []Interval {
	return slices.Clone(m.iv)
}

// Len returns the number of intervals in the mask.
func (m *Mask) Len() int {
	return len(m.iv)
}

// A Cursor is an advance-only lookup over a mask.
// Once a position is queried,
// the intervals that end before it
// are no longer considered.
type Cursor struct {
	m    *Mask
	i    int
	last int
}

// Cursor returns a new cursor
// at the beginning of the mask.
func (m *Mask) Cursor() *Cursor {
	return &Cursor{m: m}
}

// Contains returns true if a position
// is inside an interval of the mask.
//
// Positions are expected in ascending order.
// If a position is smaller than the previous one,
// the cursor is repositioned with a binary search.
func (c *Cursor) Contains(pos int) bool {
	if pos < c.last {
		c.i = c.m.search(pos)
	}
	c.last = pos

	iv := c.m.iv
	for c.i < len(iv) && iv[c.i].End < pos {
		c.i++
	}
	return c.i < len(iv) && iv[c.i].Start <= pos
}
