// Package compose 将 DSL 文档组版为可渲染的结果：解析资源与 view 段，
// 逐段排版为 fragment，并为每个 select 语句计算选区几何。
package compose

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ByLCY/galley/dsl"
	"github.com/ByLCY/galley/layout"
	"github.com/ByLCY/galley/selection"
)

func tracer() tracing.Trace {
	return tracing.Select("galley.compose")
}

// Build 根据 DSL AST 生成排版结果与选区几何。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Shaper == nil {
		return nil, fmt.Errorf("compose: 缺少排版后端 Shaper")
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, fmt.Errorf("解析资源失败: %w", err)
	}
	meta := collectMeta(doc)
	section := firstView(doc)
	if section == nil {
		return nil, fmt.Errorf("文档中缺少 view 段落")
	}
	view, err := parseView(section, res, data)
	if err != nil {
		return nil, fmt.Errorf("解析 view 失败: %w", err)
	}

	view.resolveLineHeight(opts.Shaper)
	lay := layout.NewLayout(view.cfg, view.insets, opts.Shaper)
	lay.Typeset(view.sources)

	w, h := lay.FrameSize()
	result := &Result{
		Meta:      meta,
		Resources: res,
		View: ViewBox{
			Width:          w,
			Height:         h,
			Bounds:         lay.Bounds(),
			Insets:         lay.Insets(),
			Config:         lay.Config(),
			Scale:          view.scale,
			Radius:         view.radius,
			Background:     view.background,
			SelectionColor: view.selectionColor,
			OutlineColor:   view.outlineColor,
			OutlineWidth:   view.outlineWidth,
		},
		Lines:  lineBoxes(lay),
		Layout: lay,
	}

	b := &selection.Builder{
		Lines:   lay,
		Offsets: lay,
		Bounds:  lay.Bounds(),
		Scale:   view.scale,
		Radius:  view.radius,
	}
	for _, sel := range view.selections {
		if sel.End > lay.DocumentLength() {
			return nil, fmt.Errorf("选区 [%d,%d) 超出文档长度 %d", sel.Start, sel.End, lay.DocumentLength())
		}
		box := SelectionBox{
			Range:     sel,
			FillRects: b.FillRects(sel),
			Outline:   b.Outline(sel),
		}
		if opts.Debug.Points {
			box.Points = b.OutlinePoints(sel)
		}
		result.Selections = append(result.Selections, box)
	}
	tracer().Infof("compose: %d lines, %d selections, frame %.2fx%.2fmm",
		len(result.Lines), len(result.Selections), w, h)
	return result, nil
}

// lineBoxes 将布局中的 fragment 展开为带绝对坐标的绘制单元。
func lineBoxes(lay *layout.Layout) []LineBox {
	lines := lay.Lines()
	out := make([]LineBox, 0, len(lines))
	for _, ll := range lines {
		lp, ok := lay.LineAtIndex(ll.Index)
		if !ok {
			continue
		}
		entries := ll.Collection.Entries()
		box := LineBox{Index: lp.Index, Range: lp.Range, Y: lp.Y, Height: lp.Height}
		for i, fp := range lp.Fragments {
			frag := entries[i].Fragment
			fb := FragmentBox{
				Range:    fp.Range,
				Rect:     fp.Rect,
				Baseline: fp.Rect.Y + frag.Height - frag.Descent,
			}
			x := fp.Rect.X
			for _, p := range frag.Pieces {
				pb := PieceBox{
					Kind:    p.Kind,
					Range:   p.Range,
					X:       x,
					Width:   p.Width,
					Height:  p.Height,
					Descent: p.Descent,
				}
				if p.Attachment != nil {
					pb.Attachment = p.Attachment.Name
				}
				if p.Line != nil {
					for _, g := range p.Line.Glyphs {
						g.X += x
						pb.Glyphs = append(pb.Glyphs, g)
					}
				}
				fb.Pieces = append(fb.Pieces, pb)
				x += p.Width
			}
			box.Fragments = append(box.Fragments, fb)
		}
		out = append(out, box)
	}
	return out
}
