package selection

import (
	"math"

	"github.com/ByLCY/galley/layout"
)

// LineLocator 提供按偏移与按序号查找逻辑行位置的能力。
type LineLocator interface {
	LineAt(offset int) (layout.LinePosition, bool)
	LineAtIndex(i int) (layout.LinePosition, bool)
	LastLine() (layout.LinePosition, bool)
	DocumentLength() int
}

// OffsetLocator 返回单个文档偏移处的像素矩形。
type OffsetLocator interface {
	RectForOffset(offset int) (layout.Rect, bool)
}

// DefaultRadius 是选区轮廓的默认圆角半径（mm）。
const DefaultRadius = 1.0

// Builder 根据已排版的 fragment 几何计算选区的填充矩形与轮廓路径。
// 不得与同一份 fragment 存储的重建并发调用。
type Builder struct {
	Lines   LineLocator
	Offsets OffsetLocator
	Bounds  layout.Rect // 去掉留白后的可绘制区域
	Scale   float64     // 每 mm 的设备像素数，<=0 时按 1 处理
	Radius  float64
}

// startLine 解析选区起点所在的行；起点恰为文档末尾时取最后一行。
func (b *Builder) startLine(sel layout.Range) (layout.LinePosition, bool) {
	if sel.Start == b.Lines.DocumentLength() {
		return b.Lines.LastLine()
	}
	return b.Lines.LineAt(sel.Start)
}

// endLine 解析选区终点所在的行。终点为文档末尾时直接取最后一行，
// 因为末尾偏移不一定能按位置查到。
func (b *Builder) endLine(sel layout.Range) (layout.LinePosition, bool) {
	if sel.End == b.Lines.DocumentLength() {
		return b.Lines.LastLine()
	}
	return b.Lines.LineAt(sel.End)
}

// FillRects 返回绘制选区高亮用的矩形。起止行之外被完整选中的行由一块整宽矩形覆盖。
// 任何行无法解析时返回 nil。
func (b *Builder) FillRects(sel layout.Range) []layout.Rect {
	if sel.IsEmpty() {
		return nil
	}
	first, ok := b.startLine(sel)
	if !ok {
		return nil
	}
	last, ok := b.endLine(sel)
	if !ok {
		return nil
	}
	docLen := b.Lines.DocumentLength()

	lines := []layout.LinePosition{first}
	if last.Index != first.Index {
		lines = append(lines, last)
	}

	var rects []layout.Rect
	for _, lp := range lines {
		for _, fp := range lp.Fragments {
			inter := fp.Range.Intersect(sel)
			if inter.IsEmpty() {
				continue
			}
			start, ok := b.Offsets.RectForOffset(inter.Start)
			if !ok {
				continue
			}
			r := layout.Rect{X: start.X, Y: fp.Rect.Y, Height: fp.Rect.Height}
			if extendsToMargin(fp.Range, inter, sel, docLen) {
				r.Width = b.Bounds.MaxX() - r.X
			} else {
				endX := fp.Rect.MaxX()
				if inter.End != fp.Range.End {
					end, ok := b.Offsets.RectForOffset(inter.End)
					if !ok {
						continue
					}
					endX = end.X
				}
				r.Width = endX - r.X
			}
			rects = append(rects, r)
		}
	}
	if last.Index != first.Index && first.Bottom() < last.Y {
		rects = append(rects, layout.Rect{
			X:      b.Bounds.X,
			Y:      first.Bottom(),
			Width:  b.Bounds.Width,
			Height: last.Y - first.Bottom(),
		})
	}

	out := rects[:0]
	for _, r := range rects {
		if r = b.align(r.Intersect(b.Bounds)); !r.IsEmpty() {
			out = append(out, r)
		}
	}
	tracer().Debugf("selection: [%d,%d) -> %d fill rects", sel.Start, sel.End, len(out))
	return out
}

// extendsToMargin 判断选区是否在逻辑上越过了这个 fragment 而又没到文档末尾，
// 此时高亮要画到右边界。四个条件缺一不可：选区恰好结束在 fragment 边界时不延伸。
func extendsToMargin(frag, inter, sel layout.Range, docLen int) bool {
	return inter.End == frag.End &&
		frag.End <= sel.End &&
		sel.Contains(frag.End) &&
		inter.End != docLen
}

// align 将矩形的四条边对齐到设备像素。相邻矩形的公共边会落在同一像素上。
func (b *Builder) align(r layout.Rect) layout.Rect {
	if r.IsEmpty() {
		return r
	}
	s := b.Scale
	if s <= 0 {
		s = 1
	}
	x0 := math.Round(r.X*s) / s
	y0 := math.Round(r.Y*s) / s
	x1 := math.Round(r.MaxX()*s) / s
	y1 := math.Round(r.MaxY()*s) / s
	return layout.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
