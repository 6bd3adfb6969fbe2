// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package numbering adds numerical labels
// to the internal nodes of a tree file.
//
// The labeling is purely textual:
// it works on Newick and NEXUS files
// (for example, BEAST annotated trees)
// without parsing the tree.
package numbering

import (
	"strconv"
	"strings"
)

// Max returns the largest node number in a tree text.
// It returns 0 if there are no numbered nodes.
//
// A node number is a label made only of digits,
// found just after a parenthesis or a comma,
// and ending at a branch length,
// an annotation bracket,
// or the end of the node.
// Both terminal and internal labels are counted.
// Text inside annotation brackets is ignored.
func Max(text string) int {
	var m int
	var depth int
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '[':
			depth++
			continue
		case c == ']':
			if depth > 0 {
				depth--
			}
			continue
		case depth > 0:
			continue
		case c != '(' && c != ')' && c != ',':
			continue
		}

		j := i + 1
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		k := j
		for k < len(text) && isDigit(text[k]) {
			k++
		}
		if k == j {
			continue
		}
		if k < len(text) && !isDelim(text[k]) {
			continue
		}
		v, err := strconv.Atoi(text[j:k])
		if err != nil {
			continue
		}
		m = max(m, v)
	}
	return m
}

// Insert adds a sequential number
// after each closing parenthesis
// (i.e., each internal node)
// starting from the largest node number plus one
// (see Max).
// It returns the new text
// and the number of inserted labels.
//
// If skipLabeled is true,
// parenthesis already followed by a digit
// are left unchanged.
func Insert(text string, skipLabeled bool) (string, int) {
	next := Max(text) + 1

	var b strings.Builder
	b.Grow(len(text))
	var count int
	for i := 0; i < len(text); i++ {
		c := text[i]
		b.WriteByte(c)
		if c != ')' {
			continue
		}
		if skipLabeled && i+1 < len(text) && isDigit(text[i+1]) {
			continue
		}
		b.WriteString(strconv.Itoa(next))
		next++
		count++
	}
	return b.String(), count
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case ':', '[', ',', ')', ';':
		return true
	}
	return isSpace(c)
}
