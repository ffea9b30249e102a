package layout

// accState 是累加器的两个状态：正在累积 piece，或刚刚输出了一个 fragment。
type accState int

const (
	accumulating accState = iota
	flushed
)

// accumulator 是单次 TypesetLine 调用的工作状态，不跨行共享。
type accumulator struct {
	cfg       DisplayConfig
	cursor    int // 文档绝对偏移
	pieces    []Piece
	width     float64
	maxHeight float64 // 整行范围内的最大高度，作为布局提示写入每个 fragment
	items     []BuildItem
	state     accState
}

func (a *accumulator) empty() bool { return len(a.pieces) == 0 }

func (a *accumulator) push(p Piece) {
	a.pieces = append(a.pieces, p)
	a.width += p.Width
	a.maxHeight = max(a.maxHeight, p.Height)
	a.cursor = p.Range.End
	a.state = accumulating
}

// flush 将当前累积的 piece 封装为 fragment 并重置累加器。
func (a *accumulator) flush() {
	if a.empty() {
		return
	}
	last := a.pieces[len(a.pieces)-1]
	frag := &Fragment{
		Pieces:             a.pieces,
		Width:              a.width,
		Height:             a.maxHeight,
		Descent:            last.Descent,
		LineHeightMultiple: a.cfg.multiple(),
	}
	a.items = append(a.items, BuildItem{
		Fragment: frag,
		Length:   frag.Len(),
		Height:   frag.Height * frag.LineHeightMultiple,
	})
	tracer().Debugf("layout: fragment %d [%d,%d) width=%.3f height=%.3f",
		len(a.items)-1, frag.Range().Start, frag.Range().End, frag.Width, frag.Height)
	a.pieces = nil
	a.width = 0
	a.state = flushed
}

// TypesetLine 将一条逻辑行排成若干可视 fragment。
// content 的偏移相对于 lineRange.Start；attachments 的区间为文档绝对偏移。
// 行长为 0 或最大宽度不为正时，直接生成一个空 fragment，保证光标有处可放。
func TypesetLine(content StyledText, lineRange Range, cfg DisplayConfig, attachments []Attachment, shaper Shaper) []BuildItem {
	content = overlayMarked(content, lineRange, cfg)
	if lineRange.IsEmpty() || cfg.MaxWidth <= 0 {
		return []BuildItem{emptyItem(content, lineRange, cfg, shaper)}
	}

	acc := &accumulator{cfg: cfg, cursor: lineRange.Start}
	for _, run := range Segment(lineRange, attachments) {
		switch run.Kind {
		case RunAttachment:
			acc.placeAttachment(run)
		default:
			acc.breakText(content, lineRange.Start, run, shaper)
		}
	}
	acc.flush()
	tracer().Infof("layout: line [%d,%d) -> %d fragments", lineRange.Start, lineRange.End, len(acc.items))
	return acc.items
}

// placeAttachment 附件不可拆分：放不下时先换行，单独一行时允许溢出。
func (a *accumulator) placeAttachment(run Run) {
	att := run.Attachment
	if !a.empty() && a.width+att.Width > a.cfg.MaxWidth {
		a.flush()
	}
	a.push(Piece{
		Kind:       PieceAttachment,
		Range:      run.Range,
		Width:      att.Width,
		Height:     att.Height,
		Descent:    att.Descent,
		Attachment: att,
	})
}

func (a *accumulator) breakText(content StyledText, base int, run Run, shaper Shaper) {
	for a.cursor < run.Range.End {
		rel := Range{Start: a.cursor - base, End: run.Range.End - base}
		unit := ClusterLen(content.Text[rel.Start:rel.End])

		// 同一 fragment 已有内容时，word 策略只接受完整的词，放不下的词整体换行。
		strategy := a.cfg.LineBreak
		if strategy == BreakWord && !a.empty() {
			strategy = BreakWordOnly
		}
		n := shaper.SuggestBreak(content, strategy, rel, a.cfg.MaxWidth-a.width)
		if n <= 0 && strategy == BreakWordOnly && !a.empty() {
			a.flush()
			continue
		}
		if n <= 0 {
			n = unit
		}
		n = min(n, rel.Len())
		line := shaper.Measure(content, Range{Start: rel.Start, End: rel.Start + n})

		// 单个不可拆分单位与已有内容放不到一起：先输出当前 fragment，再在空行上重试。
		// 纯空白的单位悬挂在行尾，不触发换行。
		hangs := HangingTrim(content.Text[rel.Start:rel.Start+n]) == ""
		if n == unit && !hangs && a.width+line.Width > a.cfg.MaxWidth && !a.empty() {
			tracer().Debugf("layout: unit at %d overflows, flushing", a.cursor)
			a.flush()
			continue
		}

		a.push(Piece{
			Kind:    PieceText,
			Range:   Range{Start: a.cursor, End: a.cursor + n},
			Width:   line.Width,
			Height:  line.Height,
			Descent: line.Descent,
			Line:    &line,
		})
		if a.cursor < run.Range.End {
			a.flush()
		}
	}
}

func emptyItem(content StyledText, lineRange Range, cfg DisplayConfig, shaper Shaper) BuildItem {
	line := shaper.Measure(content, Range{})
	height := line.Height
	if height <= 0 {
		height = cfg.EstimatedLineHeight
	}
	frag := &Fragment{
		Pieces: []Piece{{
			Kind:    PieceText,
			Range:   Range{Start: lineRange.Start, End: lineRange.Start},
			Height:  height,
			Descent: line.Descent,
			Line:    &line,
		}},
		Height:             height,
		Descent:            line.Descent,
		LineHeightMultiple: cfg.multiple(),
	}
	return BuildItem{Fragment: frag, Length: 0, Height: height * frag.LineHeightMultiple}
}

// Fragments 返回 items 中的 fragment 列表。
func Fragments(items []BuildItem) []*Fragment {
	out := make([]*Fragment, len(items))
	for i, it := range items {
		out[i] = it.Fragment
	}
	return out
}
