package layout

import "github.com/rivo/uniseg"

// gridShaper 每个字素簇宽 1mm，行尾换行符不占宽度，行高 4mm、下沉 1mm。
type gridShaper struct{}

func (gridShaper) width(text string) float64 {
	return float64(uniseg.GraphemeClusterCount(TrimLineEnd(text)))
}

func (s gridShaper) SuggestBreak(content StyledText, strategy LineBreakStrategy, sub Range, budget float64) int {
	return SuggestGreedyBreak(content.Text[sub.Start:sub.End], strategy, budget, s.width)
}

func (s gridShaper) Measure(content StyledText, r Range) ShapedLine {
	line := ShapedLine{Range: r, Height: 4, Descent: 1}
	for _, sp := range content.StyleRuns(r) {
		text := content.Text[sp.Range.Start:sp.Range.End]
		w := s.width(text)
		line.Glyphs = append(line.Glyphs, GlyphRun{Range: sp.Range, Text: text, Style: sp.Style, X: line.Width, Width: w})
		line.Width += w
	}
	return line
}

func plain(s string) StyledText {
	return StyledText{Text: s, Default: Style{Font: "body", Size: 4}}
}

func config(width float64, strategy LineBreakStrategy) DisplayConfig {
	return DisplayConfig{
		MaxWidth:            width,
		EstimatedLineHeight: 4,
		LineHeightMultiple:  1,
		LineBreak:           strategy,
	}
}
