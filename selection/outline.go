package selection

import (
	"math"

	"github.com/ByLCY/galley/layout"
)

// controlRatio 是曲线控制点到拐点的距离与圆角半径之比。
const controlRatio = 0.55

const epsilon = 1e-9

// OutlinePoints 返回选区轮廓的多边形顶点：从首行左上角开始，
// 沿选区涉及的每一行的每个 fragment 的右边界向下（上、下两个角点），
// 最后回到末行左下角。点数总是偶数。首行无法解析时返回 nil。
func (b *Builder) OutlinePoints(sel layout.Range) []layout.Point {
	first, ok := b.startLine(sel)
	if !ok {
		return nil
	}
	left := b.Bounds.X
	pts := []layout.Point{{X: left, Y: first.Y}}
	last := first
	for idx := first.Index; ; idx++ {
		lp, ok := b.Lines.LineAtIndex(idx)
		if !ok {
			break
		}
		if idx != first.Index {
			if lp.Range.Intersect(sel).IsEmpty() || lp.Y >= b.Bounds.MaxY() {
				break
			}
		}
		for _, fp := range lp.Fragments {
			x := left + fp.Rect.Width
			pts = append(pts, layout.Point{X: x, Y: fp.Rect.Y}, layout.Point{X: x, Y: fp.Rect.MaxY()})
		}
		last = lp
	}
	pts = append(pts, layout.Point{X: left, Y: last.Bottom()})
	return pts
}

// Outline 返回选区的圆角轮廓路径；无法解析时返回空路径。
func (b *Builder) Outline(sel layout.Range) Path {
	pts := b.OutlinePoints(sel)
	if len(pts) == 0 {
		return Path{}
	}
	radius := b.Radius
	if radius == 0 {
		radius = DefaultRadius
	}
	return RoundedPath(pts, radius)
}

// direction 是相邻两点之间的走向（y 轴向下）。
type direction int

const (
	dirNone direction = iota
	dirUp
	dirDown
	dirForward
	dirBackward
)

// headings 给出每种走向的单位向量；停靠点与控制点都由它推出。
var headings = map[direction]layout.Point{
	dirUp:       {X: 0, Y: -1},
	dirDown:     {X: 0, Y: 1},
	dirForward:  {X: 1, Y: 0},
	dirBackward: {X: -1, Y: 0},
}

func classify(a, b layout.Point) direction {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case math.Abs(dx) <= epsilon && dy < -epsilon:
		return dirUp
	case math.Abs(dx) <= epsilon && dy > epsilon:
		return dirDown
	case math.Abs(dy) <= epsilon && dx > epsilon:
		return dirForward
	case math.Abs(dy) <= epsilon && dx < -epsilon:
		return dirBackward
	}
	return dirNone
}

// heading 返回 a→b 的单位向量，斜向时按实际方向归一化。
func heading(a, b layout.Point) layout.Point {
	if v, ok := headings[classify(a, b)]; ok {
		return v
	}
	d := math.Hypot(b.X-a.X, b.Y-a.Y)
	if d <= epsilon {
		return layout.Point{}
	}
	return layout.Point{X: (b.X - a.X) / d, Y: (b.Y - a.Y) / d}
}

func along(p, v layout.Point, dist float64) layout.Point {
	return layout.Point{X: p.X + v.X*dist, Y: p.Y + v.Y*dist}
}

type corner struct {
	in, c1, c2, out layout.Point
}

// RoundedPath 将闭合多边形 pts 的每个拐角按 radius 做圆角，凸角与凹角一视同仁。
// 每条边在距拐点 radius 处停下，再用一段三次曲线接到下一条边；
// 边长不足两倍半径时半径按边长的一半收缩。最后一条边回到起点闭合。
func RoundedPath(pts []layout.Point, radius float64) Path {
	var p Path
	vs := simplify(pts)
	if len(vs) == 0 {
		return p
	}
	if len(vs) < 3 || radius <= 0 {
		p.moveTo(vs[0])
		for _, v := range vs[1:] {
			p.lineTo(v)
		}
		p.close()
		return p
	}

	n := len(vs)
	corners := make([]corner, n)
	for i, c := range vs {
		prev, next := vs[(i+n-1)%n], vs[(i+1)%n]
		vin, vout := heading(prev, c), heading(c, next)
		r := min(radius, dist(prev, c)/2, dist(c, next)/2)
		corners[i] = corner{
			in:  along(c, vin, -r),
			c1:  along(c, vin, -controlRatio*r),
			c2:  along(c, vout, controlRatio*r),
			out: along(c, vout, r),
		}
	}

	p.moveTo(corners[0].out)
	for i := 1; i <= n; i++ {
		c := corners[i%n]
		p.lineTo(c.in)
		p.cubicTo(c.c1, c.c2, c.out)
	}
	p.close()
	return p
}

func dist(a, b layout.Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// simplify 去掉重复点与共线点（包括首尾相接处），只留下真正的拐点。
func simplify(pts []layout.Point) []layout.Point {
	out := make([]layout.Point, 0, len(pts))
	for _, pt := range pts {
		if n := len(out); n > 0 && dist(out[n-1], pt) <= epsilon {
			continue
		}
		out = append(out, pt)
	}
	for len(out) > 1 && dist(out[0], out[len(out)-1]) <= epsilon {
		out = out[:len(out)-1]
	}
	for changed := true; changed && len(out) >= 3; {
		changed = false
		n := len(out)
		for i := 0; i < n; i++ {
			prev, c, next := out[(i+n-1)%n], out[i], out[(i+1)%n]
			cross := (c.X-prev.X)*(next.Y-c.Y) - (c.Y-prev.Y)*(next.X-c.X)
			if math.Abs(cross) <= epsilon {
				out = append(out[:i], out[i+1:]...)
				changed = true
				break
			}
		}
	}
	return out
}
