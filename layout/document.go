package layout

import "sort"

// LineSource 是一条待排版的逻辑行。Attachments 使用文档绝对偏移。
type LineSource struct {
	Content     StyledText
	Attachments []Attachment
}

// LineLayout 是一条已排版的逻辑行。
type LineLayout struct {
	Index      int
	Range      Range
	Y          float64
	Content    StyledText
	Collection *FragmentCollection
}

func (l *LineLayout) Height() float64 { return l.Collection.Height() }

// FragmentPosition 是某个 fragment 的文档区间与所在矩形（视图坐标）。
type FragmentPosition struct {
	Range Range `json:"range"`
	Rect  Rect  `json:"rect"`
}

// LinePosition 描述一条逻辑行的位置及其全部 fragment 的位置。
type LinePosition struct {
	Index     int                `json:"index"`
	Range     Range              `json:"range"`
	Y         float64            `json:"y"`
	Height    float64            `json:"height"`
	Fragments []FragmentPosition `json:"fragments"`
}

func (p LinePosition) Bottom() float64 { return p.Y + p.Height }

// Layout 保存整篇文档逐行排版的结果，并提供按偏移、按序号的行查找
// 以及单个偏移的像素矩形查询。
type Layout struct {
	cfg    DisplayConfig
	insets Insets
	shaper Shaper
	lines  []*LineLayout
	length int
	height float64
}

// NewLayout 创建一个空的文档布局。
func NewLayout(cfg DisplayConfig, insets Insets, shaper Shaper) *Layout {
	return &Layout{cfg: cfg, insets: insets, shaper: shaper}
}

// Typeset 依次排版每一行，行与行在纵向上首尾相接。
// 每行的文档区间等于其文本长度，偏移从 0 开始连续累加。
func (l *Layout) Typeset(sources []LineSource) {
	lines := make([]*LineLayout, 0, len(sources))
	offset := 0
	y := l.insets.Top
	for i, src := range sources {
		r := Range{Start: offset, End: offset + len(src.Content.Text)}
		items := TypesetLine(src.Content, r, l.cfg, src.Attachments, l.shaper)
		ll := &LineLayout{
			Index:      i,
			Range:      r,
			Y:          y,
			Content:    overlayMarked(src.Content, r, l.cfg),
			Collection: &FragmentCollection{},
		}
		ll.Collection.Rebuild(items, l.cfg.EstimatedLineHeight)
		lines = append(lines, ll)
		y += ll.Height()
		offset = r.End
	}
	l.lines = lines
	l.length = offset
	l.height = y - l.insets.Top
	tracer().Infof("layout: %d lines, length=%d height=%.3f", len(lines), l.length, l.height)
}

// Lines 返回已排版的行，调用方不得修改。
func (l *Layout) Lines() []*LineLayout { return l.lines }

func (l *Layout) Config() DisplayConfig { return l.cfg }
func (l *Layout) Insets() Insets { return l.insets }

// DocumentLength 返回文档总字节数。
func (l *Layout) DocumentLength() int { return l.length }

// Bounds 返回去掉留白后的可绘制区域。
func (l *Layout) Bounds() Rect {
	return Rect{X: l.insets.Left, Y: l.insets.Top, Width: l.cfg.MaxWidth, Height: l.height}
}

// FrameSize 返回包含留白的视图尺寸。
func (l *Layout) FrameSize() (float64, float64) {
	return l.insets.Left + l.cfg.MaxWidth + l.insets.Right, l.insets.Top + l.height + l.insets.Bottom
}

func (l *Layout) lineContaining(offset int) *LineLayout {
	i := sort.Search(len(l.lines), func(i int) bool { return l.lines[i].Range.End > offset })
	for ; i < len(l.lines); i++ {
		ll := l.lines[i]
		if ll.Range.Contains(offset) {
			return ll
		}
		if ll.Range.Start > offset {
			break
		}
	}
	return nil
}

// LineAt 返回包含 offset 的行位置。文档末尾偏移不属于任何行。
func (l *Layout) LineAt(offset int) (LinePosition, bool) {
	ll := l.lineContaining(offset)
	if ll == nil {
		return LinePosition{}, false
	}
	return l.position(ll), true
}

// LineAtIndex 返回第 i 行的位置。
func (l *Layout) LineAtIndex(i int) (LinePosition, bool) {
	if i < 0 || i >= len(l.lines) {
		return LinePosition{}, false
	}
	return l.position(l.lines[i]), true
}

// LastLine 返回最后一行的位置。
func (l *Layout) LastLine() (LinePosition, bool) {
	return l.LineAtIndex(len(l.lines) - 1)
}

func (l *Layout) position(ll *LineLayout) LinePosition {
	entries := ll.Collection.Entries()
	frs := make([]FragmentPosition, 0, len(entries))
	for _, e := range entries {
		frs = append(frs, FragmentPosition{
			Range: e.Range().Shift(ll.Range.Start),
			Rect: Rect{
				X:      l.insets.Left,
				Y:      ll.Y + e.Y,
				Width:  e.Fragment.Width,
				Height: e.Height,
			},
		})
	}
	return LinePosition{
		Index:     ll.Index,
		Range:     ll.Range,
		Y:         ll.Y,
		Height:    ll.Height(),
		Fragments: frs,
	}
}

// RectForOffset 返回 offset 处插入点的矩形（宽度为 0、高度为所在 fragment 的高度）。
// 文档末尾偏移落在最后一个 fragment 的尾边。
func (l *Layout) RectForOffset(offset int) (Rect, bool) {
	if len(l.lines) > 0 && offset == l.length {
		ll := l.lines[len(l.lines)-1]
		e, ok := ll.Collection.Last()
		if !ok {
			return Rect{}, false
		}
		return Rect{X: l.insets.Left + e.Fragment.Width, Y: ll.Y + e.Y, Height: e.Height}, true
	}
	ll := l.lineContaining(offset)
	if ll == nil {
		return Rect{}, false
	}
	e, ok := ll.Collection.EntryAt(offset - ll.Range.Start)
	if !ok {
		return Rect{}, false
	}
	x := l.insets.Left + l.advance(ll, e.Fragment, offset)
	return Rect{X: x, Y: ll.Y + e.Y, Height: e.Height}, true
}

// advance 返回 fragment 起点到 offset 的水平距离。
func (l *Layout) advance(ll *LineLayout, frag *Fragment, offset int) float64 {
	var x float64
	for _, p := range frag.Pieces {
		if p.Range.End <= offset {
			x += p.Width
			continue
		}
		if p.Kind == PieceText && offset > p.Range.Start {
			rel := Range{Start: p.Range.Start, End: offset}.Shift(-ll.Range.Start)
			x += l.shaper.Measure(ll.Content, rel).Width
		}
		break
	}
	return x
}
