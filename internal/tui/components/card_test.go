package components

import (
	"strings"
	"testing"

	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{100, 3},
		{101, 4},
		{7, 2},
		{5, 5},
	}
	for _, c := range cases {
		widths := LayoutRow(c.total, c.n)
		if len(widths) != c.n {
			t.Fatalf("LayoutRow(%d, %d): got %d widths", c.total, c.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != c.total {
			t.Errorf("LayoutRow(%d, %d): widths sum to %d", c.total, c.n, sum)
		}
	}
}

func TestLayoutRowZeroItems(t *testing.T) {
	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "one line", 24)
	tall := ContentCard("Tall", "a\nb\nc\nd\ne", 24)

	shortLines := len(strings.Split(short, "\n"))
	tallLines := len(strings.Split(tall, "\n"))
	if shortLines >= tallLines {
		t.Fatalf("expected short < tall, got %d and %d", shortLines, tallLines)
	}

	joined := CardRow([]string{tall, short})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want %d", got, tallLines)
	}
}

func TestMetricCardRowJoinsAllCards(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Cash", Value: "$1,200.00"},
		{Label: "Savings", Value: "$300.00", Delta: "25% of goal"},
	}, 60)

	for _, want := range []string{"Cash", "Savings", "$1,200.00", "25% of goal"} {
		if !strings.Contains(row, want) {
			t.Errorf("metric row missing %q", want)
		}
	}
}

func TestStatListAlignsValues(t *testing.T) {
	theme.SetActive("terminal")

	out := StatList([][2]string{
		{"Income", "$5,000.00"},
		{"Target savings", "$800.00"},
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"Income", "Target savings", "$5,000.00", "$800.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("stat list missing %q", want)
		}
	}
}

func TestCardInnerWidthFloor(t *testing.T) {
	if got := CardInnerWidth(8); got != 10 {
		t.Errorf("CardInnerWidth(8) = %d, want floor of 10", got)
	}
	if got := CardInnerWidth(40); got != 36 {
		t.Errorf("CardInnerWidth(40) = %d, want 36", got)
	}
}
