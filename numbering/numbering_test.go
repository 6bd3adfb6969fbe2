// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package numbering_test

import (
	"strings"
	"testing"

	"github.com/js-arias/epigeo/numbering"
	"github.com/js-arias/epigeo/phylo"
)

func TestInsert(t *testing.T) {
	tests := map[string]struct {
		in    string
		out   string
		count int
	}{
		"beast": {
			in:    "tree T = ((1[&l=a]:1,2[&l=b]:1)[&l=a]:1,3[&l=c]:2)[&l=a];",
			out:   "tree T = ((1[&l=a]:1,2[&l=b]:1)4[&l=a]:1,3[&l=c]:2)5[&l=a];",
			count: 2,
		},
		"no annotations": {
			in:    "((A:1,B:1):1,C:2);",
			out:   "((A:1,B:1)1:1,C:2)2;",
			count: 2,
		},
		"no internal nodes": {
			in:    "A;",
			out:   "A;",
			count: 0,
		},
	}

	for name, test := range tests {
		out, n := numbering.Insert(test.in, false)
		if out != test.out {
			t.Errorf("%s: got %q, want %q", name, out, test.out)
		}
		if n != test.count {
			t.Errorf("%s: got %d labels, want %d", name, n, test.count)
		}
	}
}

func TestMax(t *testing.T) {
	tests := map[string]struct {
		in  string
		max int
	}{
		"annotated":   {"(12[&a],7[&b],130)", 130},
		"no numbers":  {"(A,B)", 0},
		"internal":    {"((A:1,B:1)9:1,C:2)3;", 9},
		"lengths":     {"((A:15,B:1):20,C:2);", 0},
		"comments":    {"((A[&h={1,25}],B)[&n=40],C);", 0},
		"translate":   {"translate\n\t1 A,\n\t2 B;\ntree t = (1,2);", 2},
		"not numeric": {"((1a,2.5):1,3x);", 0},
	}
	for name, test := range tests {
		if m := numbering.Max(test.in); m != test.max {
			t.Errorf("%s: got %d, want %d", name, m, test.max)
		}
	}
}

func TestInsertUnique(t *testing.T) {
	tests := map[string]struct {
		in  string
		out string
	}{
		"partly labeled": {
			in:  "((A:1,B:1)1:1,(C:1,D:1):1);",
			out: "((A:1,B:1)1:1,(C:1,D:1)2:1)3;",
		},
		"numeric terminals": {
			in:  "((1:1,2:1):1,3:2);",
			out: "((1:1,2:1)4:1,3:2)5;",
		},
	}

	for name, test := range tests {
		out, _ := numbering.Insert(test.in, true)
		if out != test.out {
			t.Errorf("%s: got %q, want %q", name, out, test.out)
		}
		if _, err := phylo.Read(strings.NewReader(out)); err != nil {
			t.Errorf("%s: unable to read tree: %v", name, err)
		}
	}
}

func TestIdempotent(t *testing.T) {
	in := "((1[&l=a]:1,2[&l=b]:1)[&l=a]:1,(3[&l=c]:2,4[&l=c]:1):1)[&l=a];"
	once, n := numbering.Insert(in, true)
	if n != 3 {
		t.Errorf("first pass: got %d labels, want %d", n, 3)
	}

	twice, n := numbering.Insert(once, true)
	if n != 0 {
		t.Errorf("second pass: got %d labels, want %d", n, 0)
	}
	if twice != once {
		t.Errorf("second pass: got %q, want %q", twice, once)
	}

	// without skipping, nodes are labeled again
	if _, n := numbering.Insert(once, false); n != 3 {
		t.Errorf("second pass without skip: got %d labels, want %d", n, 3)
	}
}

func TestLabeledTree(t *testing.T) {
	out, _ := numbering.Insert("((A:1,B:1):1,(C:1,D:1):1);", false)

	tr, err := phylo.Read(strings.NewReader(out))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	for _, n := range tr.Preorder() {
		if n.Name == "" {
			t.Errorf("unlabeled node in %q", out)
		}
	}
}
