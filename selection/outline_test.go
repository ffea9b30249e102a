package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/galley/layout"
)

func rect(x, y, w, h float64) []layout.Point {
	return []layout.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}

func kinds(p Path) []ElementKind {
	out := make([]ElementKind, len(p.Elements))
	for i, el := range p.Elements {
		out[i] = el.Kind
	}
	return out
}

func TestRoundedRectangle(t *testing.T) {
	p := RoundedPath(rect(0, 0, 10, 4), 1)
	want := []ElementKind{MoveTo}
	for range 4 {
		want = append(want, LineTo, CubicTo)
	}
	want = append(want, Close)
	if diff := cmp.Diff(want, kinds(p)); diff != "" {
		t.Fatalf("element kinds mismatch (-want +got):\n%s", diff)
	}

	if got := p.Elements[0].P0; got != (layout.Point{X: 1, Y: 0}) {
		t.Fatalf("path should start after the first corner, got %v", got)
	}
	if got := p.Elements[1].P0; got != (layout.Point{X: 9, Y: 0}) {
		t.Fatalf("first edge should stop one radius before the corner, got %v", got)
	}
	corner := p.Elements[2]
	wantCorner := PathElement{
		Kind: CubicTo,
		P0:   layout.Point{X: 10 - controlRatio, Y: 0},
		P1:   layout.Point{X: 10, Y: controlRatio},
		P2:   layout.Point{X: 10, Y: 1},
	}
	if diff := cmp.Diff(wantCorner, corner); diff != "" {
		t.Fatalf("corner curve mismatch (-want +got):\n%s", diff)
	}
	if end := p.Elements[len(p.Elements)-2].P2; end != p.Elements[0].P0 {
		t.Fatalf("last curve should end at the start point, got %v", end)
	}
}

func TestRoundedPathClampsRadius(t *testing.T) {
	p := RoundedPath(rect(0, 0, 10, 1), 2)
	if got := p.Elements[1].P0; got != (layout.Point{X: 9.5, Y: 0}) {
		t.Fatalf("radius should shrink to half the short edge, got %v", got)
	}
	if got := p.Elements[2].P2; got != (layout.Point{X: 10, Y: 0.5}) {
		t.Fatalf("corner should end half an edge down, got %v", got)
	}
}

func TestRoundedPathHandlesConcaveCorners(t *testing.T) {
	pts := []layout.Point{
		{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 8}, {X: 0, Y: 8},
	}
	p := RoundedPath(pts, 1)
	if n := len(p.Elements); n != 1+2*6+1 {
		t.Fatalf("expected a curve at each of the 6 corners, got %d elements", n)
	}
	concave := p.Elements[2*3-1]
	if concave.Kind != LineTo || concave.P0 != (layout.Point{X: 5, Y: 4}) {
		t.Fatalf("edge into the concave corner should stop at (5,4), got %v", concave)
	}
}

func TestRoundedPathSimplifiesInput(t *testing.T) {
	pts := []layout.Point{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4}, {X: 10, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 0},
	}
	if n := len(RoundedPath(pts, 1).Elements); n != 10 {
		t.Fatalf("duplicate and collinear points should be dropped, got %d elements", n)
	}
}

func TestRoundedPathWithoutRadius(t *testing.T) {
	p := RoundedPath(rect(0, 0, 10, 4), 0)
	want := []ElementKind{MoveTo, LineTo, LineTo, LineTo, Close}
	if diff := cmp.Diff(want, kinds(p)); diff != "" {
		t.Fatalf("element kinds mismatch (-want +got):\n%s", diff)
	}
	if empty := RoundedPath(nil, 1); !empty.Empty() {
		t.Fatalf("no points should yield an empty path")
	}
}
