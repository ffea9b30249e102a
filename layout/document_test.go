package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func twoLineLayout() *Layout {
	l := NewLayout(config(10, BreakWord), Insets{Top: 2, Right: 2, Bottom: 2, Left: 2}, gridShaper{})
	l.Typeset([]LineSource{
		{Content: plain("hello world\n")},
		{Content: plain("abc")},
	})
	return l
}

func TestTypesetStacksLines(t *testing.T) {
	l := twoLineLayout()
	if l.DocumentLength() != 15 {
		t.Fatalf("document length = %d, want 15", l.DocumentLength())
	}
	if got := l.Bounds(); got != (Rect{X: 2, Y: 2, Width: 10, Height: 12}) {
		t.Fatalf("bounds = %+v", got)
	}
	if w, h := l.FrameSize(); w != 14 || h != 16 {
		t.Fatalf("frame = %gx%g, want 14x16", w, h)
	}

	first, ok := l.LineAtIndex(0)
	if !ok {
		t.Fatalf("missing line 0")
	}
	want := LinePosition{
		Index:  0,
		Range:  Range{Start: 0, End: 12},
		Y:      2,
		Height: 8,
		Fragments: []FragmentPosition{
			{Range: Range{Start: 0, End: 6}, Rect: Rect{X: 2, Y: 2, Width: 6, Height: 4}},
			{Range: Range{Start: 6, End: 12}, Rect: Rect{X: 2, Y: 6, Width: 5, Height: 4}},
		},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("line 0 mismatch (-want +got):\n%s", diff)
	}
	if last, ok := l.LastLine(); !ok || last.Index != 1 || last.Y != 10 || last.Bottom() != 14 {
		t.Fatalf("last line = %+v, %v", last, ok)
	}
	if _, ok := l.LineAtIndex(2); ok {
		t.Fatalf("LineAtIndex(2) should miss")
	}
}

func TestLineAt(t *testing.T) {
	l := twoLineLayout()
	cases := []struct {
		offset int
		index  int
	}{
		{0, 0}, {6, 0}, {11, 0}, {12, 1}, {14, 1},
	}
	for _, tc := range cases {
		pos, ok := l.LineAt(tc.offset)
		if !ok || pos.Index != tc.index {
			t.Fatalf("LineAt(%d) = %d, %v; want %d", tc.offset, pos.Index, ok, tc.index)
		}
	}
	if _, ok := l.LineAt(15); ok {
		t.Fatalf("document end should not belong to a line")
	}
}

func TestRectForOffset(t *testing.T) {
	l := twoLineLayout()
	cases := []struct {
		offset int
		want   Rect
	}{
		{0, Rect{X: 2, Y: 2, Height: 4}},
		{3, Rect{X: 5, Y: 2, Height: 4}},
		{6, Rect{X: 2, Y: 6, Height: 4}},
		{8, Rect{X: 4, Y: 6, Height: 4}},
		{13, Rect{X: 3, Y: 10, Height: 4}},
		{15, Rect{X: 5, Y: 10, Height: 4}},
	}
	for _, tc := range cases {
		got, ok := l.RectForOffset(tc.offset)
		if !ok || got != tc.want {
			t.Fatalf("RectForOffset(%d) = %+v, %v; want %+v", tc.offset, got, ok, tc.want)
		}
	}
	if _, ok := l.RectForOffset(16); ok {
		t.Fatalf("offset past the end should miss")
	}
}

func TestRectForOffsetAfterAttachment(t *testing.T) {
	l := NewLayout(config(20, BreakWord), Insets{}, gridShaper{})
	l.Typeset([]LineSource{{
		Content:     plain("a\uFFFCbc"),
		Attachments: []Attachment{{Name: "chip", Range: Range{Start: 1, End: 4}, Width: 5, Height: 4}},
	}})
	got, ok := l.RectForOffset(5)
	if !ok || got.X != 7 {
		t.Fatalf("RectForOffset(5) = %+v, %v; want x 7", got, ok)
	}
}

func TestEmptyDocumentLine(t *testing.T) {
	l := NewLayout(config(10, BreakWord), Insets{}, gridShaper{})
	l.Typeset([]LineSource{{Content: plain("")}})
	if l.DocumentLength() != 0 {
		t.Fatalf("document length = %d", l.DocumentLength())
	}
	r, ok := l.RectForOffset(0)
	if !ok || r != (Rect{Height: 4}) {
		t.Fatalf("caret on empty document = %+v, %v", r, ok)
	}
	if l.Bounds().Height != 4 {
		t.Fatalf("empty line should still occupy a line height, got %g", l.Bounds().Height)
	}
}
