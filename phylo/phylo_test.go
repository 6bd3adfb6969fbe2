// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo_test

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/epigeo/phylo"
)

func TestReadNewick(t *testing.T) {
	t.Run("newick", func(t *testing.T) {
		tr, err := phylo.Read(strings.NewReader("((A:1,B:2)5:3,C:4)6;\n"))
		if err != nil {
			t.Fatalf("unable to read tree: %v", err)
		}
		testTree(t, tr, []string{"6", "5", "A", "B", "C"}, 5)

		n := tr.Node("B")
		if n == nil {
			t.Fatalf("node %q not found", "B")
		}
		if n.Parent.Name != "5" {
			t.Errorf("parent of %q: got %q, want %q", "B", n.Parent.Name, "5")
		}
		if d := phylo.Depth(n); d != 5 {
			t.Errorf("depth of %q: got %.3f, want %.3f", "B", d, 5.0)
		}
	})

	t.Run("comments", func(t *testing.T) {
		data := "[&R] ((1[&rate=1]:1.5,2[&rate=2,loc={a,b}]:2.5)4[&x]:1.0,'three taxa':3.0)5;"
		tr, err := phylo.Read(strings.NewReader(data))
		if err != nil {
			t.Fatalf("unable to read tree: %v", err)
		}
		testTree(t, tr, []string{"5", "4", "1", "2", "three taxa"}, 3.5)
	})

	t.Run("unlabeled", func(t *testing.T) {
		tr, err := phylo.Read(strings.NewReader("((A:1,B:1):1,C:2);"))
		if err != nil {
			t.Fatalf("unable to read tree: %v", err)
		}
		testTree(t, tr, []string{"", "", "A", "B", "C"}, 2)
	})
}

const nexusData = `#NEXUS

Begin taxa;
	Dimensions ntax=3;
	Taxlabels
		'Sample A'
		B_x
		C
		;
End;

Begin trees;
	Translate
		1 'Sample A',
		2 B_x,
		3 C
		;
tree TREE1 = [&R] ((1[&rate=1]:1.5,2[&rate=2]:2.5)4[&x]:1.0,3:3.0)5;
tree TREE2 = [&R] ((1:1,2:1)4:1,3:2)5;
End;
`

func TestReadNexus(t *testing.T) {
	tr, err := phylo.Read(strings.NewReader(nexusData))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	if tr.Name != "TREE1" {
		t.Errorf("tree name: got %q, want %q", tr.Name, "TREE1")
	}
	testTree(t, tr, []string{"5", "4", "Sample A", "B_x", "C"}, 3.5)

	terms := []string{"B_x", "C", "Sample A"}
	if got := tr.Terms(); !reflect.DeepEqual(got, terms) {
		t.Errorf("terms: got %v, want %v", got, terms)
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"unclosed":       "((A,B);",
		"no semicolon":   "(A,B)",
		"bad length":     "(A:x,B);",
		"no tree":        "#NEXUS\nbegin taxa;\nend;\n",
		"unclosed quote": "('A,B);",
	}
	for name, data := range tests {
		if _, err := phylo.Read(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestReadDuplicate(t *testing.T) {
	tests := map[string]string{
		"internal":          "((A:1,B:1)1:1,(C:1,D:1)1:1)2;",
		"internal and term": "((1:1,2:1)1:1,3:2)2;",
		"nexus translate":   "#NEXUS\nbegin trees;\ntranslate 1 A, 2 B, 3 A;\ntree t = ((1,2)X,3)Y;\nend;\n",
	}
	for name, data := range tests {
		_, err := phylo.Read(strings.NewReader(data))
		if !errors.Is(err, phylo.ErrDuplicate) {
			t.Errorf("%s: got error %v, want %v", name, err, phylo.ErrDuplicate)
		}
	}

	// unlabeled internal nodes are valid
	if _, err := phylo.Read(strings.NewReader("((A,B),(C,D));")); err != nil {
		t.Errorf("unlabeled: unexpected error: %v", err)
	}
}

func TestNewick(t *testing.T) {
	tr, err := phylo.Read(strings.NewReader("((A:1,'B c':2)5:3,C:4)6;"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}

	var buf bytes.Buffer
	if err := tr.Newick(&buf, phylo.NewickOptions{Internal: true}); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	want := "((A:1,'B c':2)5:3,C:4)6;\n"
	if got := buf.String(); got != want {
		t.Errorf("newick: got %q, want %q", got, want)
	}

	buf.Reset()
	if err := tr.Newick(&buf, phylo.NewickOptions{Scale: 2}); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	want = "((A:0.5,'B c':1):1.5,C:2);\n"
	if got := buf.String(); got != want {
		t.Errorf("newick: got %q, want %q", got, want)
	}
}

func testTree(t testing.TB, tr *phylo.Tree, names []string, height float64) {
	t.Helper()

	var got []string
	for _, n := range tr.Preorder() {
		got = append(got, n.Name)
	}
	if !reflect.DeepEqual(got, names) {
		t.Errorf("preorder: got %v, want %v", got, names)
	}
	if !tr.Root.IsRoot() {
		t.Errorf("root: node %q has a parent", tr.Root.Name)
	}
	if h := tr.Height(); math.Abs(h-height) > 1e-9 {
		t.Errorf("height: got %.6f, want %.6f", h, height)
	}
}
