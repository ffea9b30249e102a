package selection

import (
	"testing"

	"github.com/ByLCY/galley/layout"
)

func TestPathMapKeepsStructure(t *testing.T) {
	p := RoundedPath(rect(0, 0, 10, 4), 1)
	flipped := p.Map(func(pt layout.Point) layout.Point { return layout.Point{X: pt.X, Y: 20 - pt.Y} })
	if len(flipped.Elements) != len(p.Elements) {
		t.Fatalf("Map changed the element count")
	}
	for i, el := range flipped.Elements {
		orig := p.Elements[i]
		if el.Kind != orig.Kind {
			t.Fatalf("element %d kind changed", i)
		}
		if el.Kind != Close && (el.P0.X != orig.P0.X || el.P0.Y != 20-orig.P0.Y) {
			t.Fatalf("element %d not mapped: %v -> %v", i, orig, el)
		}
	}
	if p.Elements[0].P0.Y != 0 {
		t.Fatalf("Map must not modify the receiver")
	}
}

func TestToCanvas(t *testing.T) {
	p := RoundedPath(rect(0, 0, 10, 4), 1)
	cp := p.ToCanvas()
	if cp.Empty() || !cp.Closed() {
		t.Fatalf("canvas path should be non-empty and closed")
	}
	var empty Path
	if !empty.ToCanvas().Empty() {
		t.Fatalf("empty path should convert to an empty canvas path")
	}
}

func TestPathElementString(t *testing.T) {
	el := PathElement{Kind: LineTo, P0: layout.Point{X: 1, Y: 2}}
	if got := el.String(); got != "LineTo(1, 2)" {
		t.Fatalf("String = %q", got)
	}
	if got := (PathElement{}).String(); got != "InvalidPathElement" {
		t.Fatalf("zero element String = %q", got)
	}
}
