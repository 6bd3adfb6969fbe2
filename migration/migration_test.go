// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package migration_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/epigeo/migration"
	"github.com/js-arias/epigeo/nodeinfo"
	"github.com/js-arias/epigeo/phylo"
)

const treeData = "((A:2,B:3)C1:4,D:6)R;"

const nodeData = `node,height,length,location,prob,isolate
R,7,NA,Africa,1,NA
C1,3,4,Eurasia,0.9,NA
A,1,2,Eurasia,1,2009_a
B,0,3,Africa,1,2010_b
D,1,6,Africa,1,2009_d
`

func TestFixed(t *testing.T) {
	tr := readTree(t, treeData)
	info := readNodes(t, nodeData)

	m, err := migration.Fixed(tr, info, migration.Continents)
	if err != nil {
		t.Fatalf("fixed: unexpected error: %v", err)
	}

	years := []int{0, 1, 2, 3, 4, 5, 6, 7}
	if got := m.Years(); !reflect.DeepEqual(got, years) {
		t.Errorf("years: got %v, want %v", got, years)
	}
	if n := len(m.Labels()); n != 25 {
		t.Errorf("transitions: got %d, want %d", n, 25)
	}

	series := map[string][]float64{
		migration.Label("Africa", "Africa"):   {1, 1, 1, 1, 1, 1, 1, 0},
		migration.Label("Africa", "Eurasia"):  {1, 1, 1, 1, 1, 0, 0, 0},
		migration.Label("Eurasia", "Africa"):  {0, 0, 0, 0, 1, 1, 1, 1},
		migration.Label("Eurasia", "Eurasia"): {0, 0, 0, 0, 1, 1, 1, 0},
		migration.Label("NorthAmr", "Africa"): {0, 0, 0, 0, 0, 0, 0, 0},
	}
	testSeries(t, "fixed", m, series)

	// number of lineages alive at each year
	alive := []float64{2, 2, 2, 2, 4, 3, 3, 1}
	if got := m.Totals(); !reflect.DeepEqual(got, alive) {
		t.Errorf("totals: got %v, want %v", got, alive)
	}
}

func TestCalendar(t *testing.T) {
	tr := readTree(t, treeData)
	info := readNodes(t, nodeData)

	m, err := migration.Calendar(tr, info)
	if err != nil {
		t.Fatalf("calendar: unexpected error: %v", err)
	}

	want := `,2003,2004,2005,2006,2007,2008,2009,2010
Africa_to_Africa,1,1,1,1,1,1,1,0
Africa_to_Eurasia,1,1,1,1,1,0,0,0
Eurasia_to_Africa,0,0,0,0,1,1,1,1
Eurasia_to_Eurasia,0,0,0,0,1,1,1,0
`
	var buf bytes.Buffer
	if err := m.WriteCSV(&buf); err != nil {
		t.Fatalf("unable to write matrix: %v", err)
	}
	if got := buf.String(); got != want {
		t.Errorf("matrix: got\n%s\nwant\n%s", got, want)
	}

	nm, err := migration.ReadCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("unable to read matrix: %v", err)
	}
	if got := nm.Locations(); !reflect.DeepEqual(got, []string{"Africa", "Eurasia"}) {
		t.Errorf("locations: got %v, want %v", got, []string{"Africa", "Eurasia"})
	}
	if !reflect.DeepEqual(nm.Years(), m.Years()) {
		t.Errorf("years: got %v, want %v", nm.Years(), m.Years())
	}
	for _, f := range m.Locations() {
		for _, to := range m.Locations() {
			if got, want := nm.Series(f, to), m.Series(f, to); !reflect.DeepEqual(got, want) {
				t.Errorf("read %s: got %v, want %v", migration.Label(f, to), got, want)
			}
		}
	}
}

func TestPlacement(t *testing.T) {
	// branch lengths with decimals:
	// the calendar matrix uses the floor of the branch length
	// so the branch of C1 starts at the root
	// while the fixed matrix starts it before the root.
	data := `node,height,length,location,prob,isolate
R,7,NA,Africa,1,NA
C1,3.2,3.5,Eurasia,0.9,NA
A,1,2.2,Eurasia,1,2009_a
B,0,3.2,Africa,1,2010_b
D,1,6,Africa,1,2009_d
`
	tr := readTree(t, "((A:2.2,B:3.2)C1:3.8,D:6)R;")
	info := readNodes(t, data)

	m, err := migration.Calendar(tr, info)
	if err != nil {
		t.Fatalf("calendar: unexpected error: %v", err)
	}
	series := map[string][]float64{
		// C1: end = 7 - 4 = 3; start = 3 - 3 = 0
		migration.Label("Africa", "Eurasia"): {1, 1, 1, 1, 0, 0, 0, 0},
		// A: end = 7 - 1 = 6; start = 6 - 2 = 4
		migration.Label("Eurasia", "Eurasia"): {0, 0, 0, 0, 1, 1, 1, 0},
		// B: end = 7; start = 7 - 3 = 4
		migration.Label("Eurasia", "Africa"): {0, 0, 0, 0, 1, 1, 1, 1},
	}
	testSeries(t, "calendar", m, series)

	if _, err := migration.Fixed(tr, info, migration.Continents); !errors.Is(err, migration.ErrYearRange) {
		t.Errorf("fixed: got error %v, want %v", err, migration.ErrYearRange)
	}
}

func TestErrors(t *testing.T) {
	tr := readTree(t, treeData)

	tests := map[string]struct {
		data string
		want error
	}{
		"missing node": {
			data: strings.Replace(nodeData, "A,1,2,Eurasia,1,2009_a\n", "", 1),
			want: migration.ErrMissingNode,
		},
		"missing parent": {
			data: strings.Replace(nodeData, "R,7,NA,Africa,1,NA\n", "", 1),
			want: migration.ErrNoParent,
		},
		"invalid location": {
			data: strings.Replace(nodeData, "D,1,6,Africa", "D,1,6,Oceania", 1),
			want: migration.ErrLocation,
		},
	}

	for name, test := range tests {
		info := readNodes(t, test.data)
		if _, err := migration.Fixed(tr, info, migration.Continents); !errors.Is(err, test.want) {
			t.Errorf("%s: got error %v, want %v", name, err, test.want)
		}
	}
}

func TestMatrixAdd(t *testing.T) {
	m := migration.NewMatrix([]string{"a", "b"}, 2000, 2004)

	if err := m.Add("a", "b", 2001, 2003); err != nil {
		t.Fatalf("add: unexpected error: %v", err)
	}
	if err := m.Add("a", "b", 2003, 2003); err != nil {
		t.Fatalf("add: unexpected error: %v", err)
	}
	want := []float64{0, 1, 1, 2, 0}
	if got := m.Series("a", "b"); !reflect.DeepEqual(got, want) {
		t.Errorf("series: got %v, want %v", got, want)
	}
	if c := m.Count("a", "b", 2003); c != 2 {
		t.Errorf("count: got %d, want %d", c, 2)
	}

	if err := m.Add("a", "b", 1999, 2001); !errors.Is(err, migration.ErrYearRange) {
		t.Errorf("add: got error %v, want %v", err, migration.ErrYearRange)
	}
	if err := m.Add("a", "b", 2003, 2005); !errors.Is(err, migration.ErrYearRange) {
		t.Errorf("add: got error %v, want %v", err, migration.ErrYearRange)
	}
	if err := m.Add("a", "c", 2001, 2002); !errors.Is(err, migration.ErrLocation) {
		t.Errorf("add: got error %v, want %v", err, migration.ErrLocation)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"years":       ",2000,2002\na_to_a,1,1\n",
		"not squared": ",2000,2001\na_to_a,1,1\na_to_b,0,0\n",
		"bad order":   ",2000\na_to_b,1\na_to_a,1\nb_to_a,1\nb_to_b,1\n",
		"bad count":   ",2000\na_to_a,x\n",
	}
	for name, data := range tests {
		if _, err := migration.ReadCSV(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func testSeries(t testing.TB, name string, m *migration.Matrix, series map[string][]float64) {
	t.Helper()

	for _, f := range m.Locations() {
		for _, to := range m.Locations() {
			lb := migration.Label(f, to)
			want, ok := series[lb]
			if !ok {
				continue
			}
			if got := m.Series(f, to); !reflect.DeepEqual(got, want) {
				t.Errorf("%s: %s: got %v, want %v", name, lb, got, want)
			}
		}
	}
}

func readTree(t testing.TB, data string) *phylo.Tree {
	t.Helper()

	tr, err := phylo.Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	return tr
}

func readNodes(t testing.TB, data string) *nodeinfo.Table {
	t.Helper()

	info, err := nodeinfo.Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read nodes: %v", err)
	}
	return info
}
