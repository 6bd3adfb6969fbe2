// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nodeinfo_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/epigeo/nodeinfo"
)

const nodeData = `node,height,length,location,prob,isolate
R,7,NA,Africa,1,NA
C1,3,4,Eurasia,0.9,NA
A,1,2,Eurasia,1,2009_a
B,0,3,Africa,1,2010_b
D,1,6,SouthAmr,1,2009_d
`

func TestRead(t *testing.T) {
	tab, err := nodeinfo.Read(strings.NewReader(nodeData))
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}

	if tab.Len() != 5 {
		t.Errorf("nodes: got %d, want %d", tab.Len(), 5)
	}
	names := []string{"R", "C1", "A", "B", "D"}
	if got := tab.Names(); !reflect.DeepEqual(got, names) {
		t.Errorf("names: got %v, want %v", got, names)
	}

	in, ok := tab.Get("C1")
	if !ok {
		t.Fatalf("node %q not found", "C1")
	}
	want := nodeinfo.Info{
		Name:     "C1",
		Height:   3,
		Length:   4,
		Location: "Eurasia",
		Prob:     0.9,
		Isolate:  nodeinfo.NA,
	}
	if in != want {
		t.Errorf("node %q: got %+v, want %+v", "C1", in, want)
	}

	r, _ := tab.Get("R")
	if !math.IsNaN(r.Length) {
		t.Errorf("root length: got %.3f, want NaN", r.Length)
	}

	locs := []string{"Africa", "Eurasia", "SouthAmr"}
	if got := tab.Locations(); !reflect.DeepEqual(got, locs) {
		t.Errorf("locations: got %v, want %v", got, locs)
	}

	y, err := tab.MostRecentYear()
	if err != nil {
		t.Fatalf("most recent year: unexpected error: %v", err)
	}
	if y != 2010 {
		t.Errorf("most recent year: got %d, want %d", y, 2010)
	}
}

func TestShortRows(t *testing.T) {
	data := "node,height,length,location\nA,1,2,Africa\nB,2,1,Eurasia\n"
	tab, err := nodeinfo.Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}
	in, _ := tab.Get("A")
	if in.Isolate != nodeinfo.NA {
		t.Errorf("isolate: got %q, want %q", in.Isolate, nodeinfo.NA)
	}
	if !math.IsNaN(in.Prob) {
		t.Errorf("prob: got %.3f, want NaN", in.Prob)
	}

	if _, err := tab.MostRecentYear(); !errors.Is(err, nodeinfo.ErrNoYear) {
		t.Errorf("most recent year: got error %v, want %v", err, nodeinfo.ErrNoYear)
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"short row":  "node,height,length,location\nA,1,2\n",
		"bad height": "node,height,length,location\nA,x,2,Africa\n",
		"bad length": "node,height,length,location\nA,1,?,Africa\n",
		"empty":      "",
	}
	for name, data := range tests {
		if _, err := nodeinfo.Read(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
