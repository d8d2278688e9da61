package interaction

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/common"
)

func TestGridInit(t *testing.T) {
	cases := []struct {
		name       string
		bounds     cp.BB
		cols, rows int
		ok         bool
		wantCols   int
	}{
		{"regular", rect(0, 0, 1200, 1200), 16, 12, true, 16},
		{"quantized", rect(0, 0, 10, 10), 4, 4, true, 4},
		{"tiny_stage", rect(0, 0, 1, 100), 8, 8, false, 0},
		{"empty_stage", rect(0, 0, 0, 0), 8, 8, false, 0},
		{"one_column_requested", rect(0, 0, 100, 100), 1, 8, false, 0},
		{"inverted", rect(10, 10, 0, 0), 8, 8, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var g Grid
			if got := g.Init(c.bounds, c.cols, c.rows, 10); got != c.ok {
				t.Fatalf("Init = %v, want %v", got, c.ok)
			}
			if g.Ready() != c.ok {
				t.Fatalf("Ready = %v after Init = %v", g.Ready(), c.ok)
			}
			if c.ok && g.Cols() != c.wantCols {
				t.Fatalf("cols = %d, want %d", g.Cols(), c.wantCols)
			}
		})
	}
}

func TestGridTest(t *testing.T) {
	var g Grid
	if !g.Init(rect(0, 0, 100, 100), 10, 10, 40) {
		t.Fatalf("Init failed")
	}
	g.Insert(0, rect(0, 0, 5, 5))
	g.Insert(1, rect(50, 50, 60, 60))
	g.Insert(33, rect(95, 0, 99, 99))
	g.Insert(2, rect(-500, -500, -400, -400))

	cases := []struct {
		name  string
		query cp.BB
		want  []int
	}{
		{"top_left", rect(1, 1, 2, 2), []int{0, 2}},
		{"middle", rect(55, 55, 56, 56), []int{1}},
		{"right_column_second_word", rect(96, 40, 97, 41), []int{33}},
		{"spanning", rect(0, 0, 100, 100), []int{0, 1, 2, 33}},
		{"nothing", rect(30, 30, 31, 31), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := g.Test(c.query, nil)
			slices.Sort(got)
			if !slices.Equal(got, c.want) {
				t.Fatalf("Test = %v, want %v", got, c.want)
			}
		})
	}
}

func TestGridIsSupersetOfExactOverlap(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	randRect := func() cp.BB {
		x, y := rng.Float64()*1400-100, rng.Float64()*1400-100
		return rect(x, y, x+rng.Float64()*120, y+rng.Float64()*120)
	}

	rects := make([]cp.BB, 100)
	var g Grid
	if !g.Init(stage, 16, 12, len(rects)) {
		t.Fatalf("Init failed")
	}
	for i := range rects {
		rects[i] = randRect()
		g.Insert(i, rects[i])
	}
	for n := 0; n < 200; n++ {
		q := randRect()
		got := g.Test(q, nil)
		for i, r := range rects {
			if common.RectsOverlap(r, q) && !slices.Contains(got, i) {
				t.Fatalf("query %v missed overlapping rect %d %v", q, i, r)
			}
		}
	}
}

func TestGridReinitClearsBits(t *testing.T) {
	var g Grid
	g.Init(stage, 8, 8, 4)
	g.Insert(3, rect(0, 0, 10, 10))
	g.Init(stage, 8, 8, 4)
	if got := g.Test(rect(0, 0, 10, 10), nil); len(got) != 0 {
		t.Fatalf("stale ids after Init: %v", got)
	}
}
