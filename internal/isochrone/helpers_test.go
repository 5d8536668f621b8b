package isochrone

import (
	"testing"

	"github.com/jmorland/isogrid/internal/table"
)

// Fixture axes: the 2x2 (feh, age) scenario with three-mass tracks.
var (
	testFehs   = []float64{-0.5, 0.0}
	testAges   = []float64{9.0, 9.5}
	testMasses = []float64{0.8, 1.0, 1.2}
)

// cellBase gives each (feh, age) cell a distinct log-g zero point so
// bilinear blends are easy to compute by hand.
func cellBase(fi, ai int) float64 {
	return 4.0 + 0.4*float64(fi) + 0.2*float64(ai)
}

// testLogG is linear in mass within a track: exact values at grid points,
// midpoints land exactly between them.
func testLogG(fi, ai int, mass float64) float64 {
	return cellBase(fi, ai) - 0.5*(mass-0.8)
}

func testRow(feh, age float64, fi, ai int, mass float64) []float64 {
	row := make([]float64, 12)
	row[0] = feh
	row[1] = age
	row[2] = mass
	row[3] = 3.70 + 0.05*mass        // logTeff
	row[4] = testLogG(fi, ai, mass)  // logg
	row[5] = mass - 1                // logL
	row[6] = 0.01                    // Z_surf
	for b := 0; b < 5; b++ {
		row[7+b] = 6 - 2*mass + 0.1*float64(b) // ugriz, brighter with mass
	}
	return row
}

// testTable builds the 2x2x3 fixture from the interpolation scenario tests.
func testTable(t *testing.T) *table.Table {
	t.Helper()
	tb := table.New(table.MIST())
	for fi, feh := range testFehs {
		for ai, age := range testAges {
			for _, mass := range testMasses {
				if err := tb.AppendRow(testRow(feh, age, fi, ai, mass)); err != nil {
					t.Fatalf("AppendRow: %v", err)
				}
			}
		}
	}
	return tb
}

// unevenTable extends the fixture with a longer track at (-0.5, 9.0), a feh
// value 0.5 present only at age 9.0, and therefore an empty (0.5, 9.5) cell.
func unevenTable(t *testing.T) *table.Table {
	t.Helper()
	tb := testTable(t)
	if err := tb.AppendRow(testRow(-0.5, 9.0, 0, 0, 1.4)); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	for _, mass := range testMasses {
		if err := tb.AppendRow(testRow(0.5, 9.0, 2, 0, mass)); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}
	return tb
}

func newTestEngine(t *testing.T, tb *table.Table) *Engine {
	t.Helper()
	e, err := New(tb, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}
