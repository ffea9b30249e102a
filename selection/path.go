package selection

import (
	"fmt"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/galley/layout"
)

// ElementKind 是路径元素的种类。
type ElementKind int

const (
	MoveTo ElementKind = iota + 1
	LineTo
	CubicTo
	Close
)

// PathElement 是路径中的一步。MoveTo/LineTo 只用 P0；
// CubicTo 的 P0、P1 为控制点，P2 为终点。
type PathElement struct {
	Kind ElementKind  `json:"kind"`
	P0   layout.Point `json:"p0"`
	P1   layout.Point `json:"p1"`
	P2   layout.Point `json:"p2"`
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveTo:
		return fmt.Sprintf("MoveTo(%g, %g)", el.P0.X, el.P0.Y)
	case LineTo:
		return fmt.Sprintf("LineTo(%g, %g)", el.P0.X, el.P0.Y)
	case CubicTo:
		return fmt.Sprintf("CubicTo(%g, %g; %g, %g; %g, %g)", el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
	case Close:
		return "Close"
	}
	return "InvalidPathElement"
}

// Path 是由直线与三次曲线组成的闭合轮廓。
type Path struct {
	Elements []PathElement `json:"elements"`
}

func (p *Path) Empty() bool { return len(p.Elements) == 0 }

func (p *Path) moveTo(pt layout.Point) {
	p.Elements = append(p.Elements, PathElement{Kind: MoveTo, P0: pt})
}

func (p *Path) lineTo(pt layout.Point) {
	p.Elements = append(p.Elements, PathElement{Kind: LineTo, P0: pt})
}

func (p *Path) cubicTo(c1, c2, end layout.Point) {
	p.Elements = append(p.Elements, PathElement{Kind: CubicTo, P0: c1, P1: c2, P2: end})
}

func (p *Path) close() {
	p.Elements = append(p.Elements, PathElement{Kind: Close})
}

// Map 返回对每个顶点与控制点应用 f 之后的新路径。
func (p *Path) Map(f func(layout.Point) layout.Point) Path {
	out := Path{Elements: make([]PathElement, len(p.Elements))}
	for i, el := range p.Elements {
		if el.Kind != Close {
			el.P0, el.P1, el.P2 = f(el.P0), f(el.P1), f(el.P2)
		}
		out.Elements[i] = el
	}
	return out
}

// ToCanvas 转换为 canvas.Path，坐标保持不变。
func (p *Path) ToCanvas() *canvas.Path {
	out := &canvas.Path{}
	for _, el := range p.Elements {
		switch el.Kind {
		case MoveTo:
			out.MoveTo(el.P0.X, el.P0.Y)
		case LineTo:
			out.LineTo(el.P0.X, el.P0.Y)
		case CubicTo:
			out.CubeTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case Close:
			out.Close()
		}
	}
	return out
}
