package layout

// overlayMarked 将输入法标记区间（文档绝对偏移）的叠加属性写入行内容的样式 span。
// 返回新的 StyledText，不修改调用方的 Spans。
func overlayMarked(content StyledText, lineRange Range, cfg DisplayConfig) StyledText {
	if len(cfg.MarkedRanges) == 0 {
		return content
	}
	var extra []StyleSpan
	for _, mr := range cfg.MarkedRanges {
		r := mr.Intersect(lineRange)
		if r.IsEmpty() {
			continue
		}
		rel := r.Shift(-lineRange.Start)
		for _, part := range content.StyleRuns(rel) {
			extra = append(extra, StyleSpan{Range: part.Range, Style: cfg.MarkedStyle.Apply(part.Style)})
		}
	}
	if len(extra) == 0 {
		return content
	}
	spans := make([]StyleSpan, 0, len(content.Spans)+len(extra))
	spans = append(spans, content.Spans...)
	spans = append(spans, extra...)
	content.Spans = spans
	return content
}
