package components

import (
	"testing"
)

func TestChartTickStep(t *testing.T) {
	cases := []struct {
		maxVal float64
		want   float64
	}{
		{400, 100},
		{1000, 500},
		{5000, 2000},
		{120, 50},
		{0, 1},
	}
	for _, c := range cases {
		if got := chartTickStep(c.maxVal); got != c.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", c.maxVal, got, c.want)
		}
	}
}

func TestFormatDollarLabel(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{500, "$500"},
		{1000, "$1k"},
		{1500, "$1.5k"},
		{2000000, "$2M"},
	}
	for _, c := range cases {
		if got := formatDollarLabel(c.v); got != c.want {
			t.Errorf("formatDollarLabel(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestChartAxisLabelsDropCollisions(t *testing.T) {
	// Three bars of width 2 with gap 1: positions 0, 3, 6.
	got := chartAxisLabels([]string{"Jan", "Feb", "Mar"}, 2, 1, 9)
	// "Jan" occupies 0-2, so "Feb" at 3 collides and is dropped;
	// "Mar" at 6 fits.
	if got != "Jan   Mar" {
		t.Errorf("axis labels = %q, want %q", got, "Jan   Mar")
	}
}

func TestBarChartEmpty(t *testing.T) {
	if got := BarChart(nil, nil, "", 40, 8); got != "" {
		t.Errorf("expected empty output for no values, got %q", got)
	}
}
