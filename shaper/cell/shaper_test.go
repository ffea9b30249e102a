package cell

import (
	"testing"

	"github.com/ByLCY/galley/layout"
)

func TestCellsCountsWideAndTab(t *testing.T) {
	s := New(2, 5)
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"abc\n", 3},
		{"中文", 4},
		{"a\tb", 6},
		{"e\u0301", 1}, // e + combining acute is one cluster
	}
	for _, c := range cases {
		if got := s.Cells(c.in); got != c.want {
			t.Fatalf("Cells(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMeasureSplitsStyleRuns(t *testing.T) {
	s := New(1, 4)
	bold := layout.Style{Font: "go-bold", Size: 4}
	content := layout.StyledText{
		Text:    "hello world",
		Default: layout.Style{Font: "go-regular", Size: 4},
		Spans:   []layout.StyleSpan{{Range: layout.Range{Start: 6, End: 11}, Style: bold}},
	}
	line := s.Measure(content, layout.Range{Start: 2, End: 9})
	if line.Width != 7 {
		t.Fatalf("width = %g, want 7", line.Width)
	}
	if len(line.Glyphs) != 2 {
		t.Fatalf("expected 2 glyph runs, got %d", len(line.Glyphs))
	}
	if line.Glyphs[1].Style != bold || line.Glyphs[1].X != 4 || line.Glyphs[1].Text != "wor" {
		t.Fatalf("unexpected second run: %+v", line.Glyphs[1])
	}
	if line.Height != 4 {
		t.Fatalf("height = %g, want 4", line.Height)
	}
}

func TestMeasureEmptyRangeKeepsHeight(t *testing.T) {
	s := New(1, 6)
	line := s.Measure(layout.StyledText{}, layout.Range{})
	if line.Width != 0 || line.Height != 6 {
		t.Fatalf("unexpected empty measurement: %+v", line)
	}
}

func TestSuggestBreakWordWrap(t *testing.T) {
	s := New(1, 4)
	content := layout.StyledText{Text: "alpha beta gamma"}
	n := s.SuggestBreak(content, layout.BreakWord, layout.Range{Start: 0, End: len(content.Text)}, 11)
	if got := content.Text[:n]; got != "alpha beta " {
		t.Fatalf("break = %q, want %q", got, "alpha beta ")
	}
	n = s.SuggestBreak(content, layout.BreakWord, layout.Range{Start: 6, End: len(content.Text)}, 3)
	if got := content.Text[6 : 6+n]; got != "bet" {
		t.Fatalf("fallback break = %q, want %q", got, "bet")
	}
}
