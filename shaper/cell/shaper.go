// Package cell implements a monospace shaper that measures text in terminal
// cells, the way a character-grid display lays text out.
package cell

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/ByLCY/galley/layout"
)

// Shaper 以终端单元格为单位测量文本，每个单元格宽 CellWidth（mm）。
// 宽字符（CJK、emoji）占两个单元格，制表符占 TabWidth 个。
type Shaper struct {
	CellWidth  float64
	LineHeight float64
	Descent    float64
	TabWidth   int
}

var _ layout.Shaper = (*Shaper)(nil)

// New 返回一个单元格宽 cellWidth、行高 lineHeight 的 Shaper。
func New(cellWidth, lineHeight float64) *Shaper {
	return &Shaper{
		CellWidth:  cellWidth,
		LineHeight: lineHeight,
		Descent:    lineHeight * 0.2,
		TabWidth:   4,
	}
}

// Cells 返回 text 占用的单元格数，行尾换行符不计宽度。
func (s *Shaper) Cells(text string) int {
	text = layout.TrimLineEnd(text)
	cells := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			cells += max(s.TabWidth, 1)
			continue
		}
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			w = uniseg.StringWidth(cluster)
		}
		cells += w
	}
	return cells
}

func (s *Shaper) width(text string) float64 {
	return float64(s.Cells(text)) * s.CellWidth
}

// SuggestBreak 实现 layout.Shaper。
func (s *Shaper) SuggestBreak(content layout.StyledText, strategy layout.LineBreakStrategy, sub layout.Range, budget float64) int {
	return layout.SuggestGreedyBreak(content.Text[sub.Start:sub.End], strategy, budget, s.width)
}

// Measure 实现 layout.Shaper，每个样式段产生一个字形串。
func (s *Shaper) Measure(content layout.StyledText, r layout.Range) layout.ShapedLine {
	line := layout.ShapedLine{Range: r, Height: s.LineHeight, Descent: s.Descent}
	var x float64
	for _, sp := range content.StyleRuns(r) {
		text := content.Text[sp.Range.Start:sp.Range.End]
		w := s.width(text)
		line.Glyphs = append(line.Glyphs, layout.GlyphRun{
			Range: sp.Range,
			Text:  text,
			Style: sp.Style,
			X:     x,
			Width: w,
		})
		x += w
	}
	line.Width = x
	return line
}
