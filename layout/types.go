package layout

import "slices"

// 该文件定义排版核心的数据模型：区间、样式、附件、内容片段（run）、
// 排好的行片段（fragment）以及几何类型。所有长度单位为毫米（mm），
// 偏移量为 UTF-8 字节偏移。

// Range 表示半开区间 [Start, End)。
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len 返回区间长度，倒置区间视为 0。
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Range) IsEmpty() bool { return r.Len() == 0 }

// Contains 判断 off 是否落在 [Start, End) 内。
func (r Range) Contains(off int) bool { return off >= r.Start && off < r.End }

// Intersect 返回两个区间的交集；不相交时返回零长度区间。
func (r Range) Intersect(o Range) Range {
	start := max(r.Start, o.Start)
	end := min(r.End, o.End)
	if end < start {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end}
}

// Shift 将区间整体平移 delta。
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Style 描述一段文本的字体与装饰。Size 单位为 mm。
type Style struct {
	Font      string  `json:"font"`
	Size      float64 `json:"size"`
	Color     Color   `json:"color"`
	Underline bool    `json:"underline,omitempty"`
}

// StyleSpan 将样式绑定到行内的相对区间。
type StyleSpan struct {
	Range Range `json:"range"`
	Style Style `json:"style"`
}

// StyledText 是一条逻辑行的带样式内容，Spans 的偏移相对于行首。
type StyledText struct {
	Text  string      `json:"text"`
	Spans []StyleSpan `json:"spans,omitempty"`
	// Default 用于没有被任何 span 覆盖的位置。
	Default Style `json:"default"`
}

// StyleAt 返回覆盖 off 的样式；若多个 span 覆盖，以最后一个为准。
func (t StyledText) StyleAt(off int) Style {
	style := t.Default
	for _, sp := range t.Spans {
		if sp.Range.Contains(off) {
			style = sp.Style
		}
	}
	return style
}

// StyleRuns 将 r 按样式边界拆分为连续的子区间。
func (t StyledText) StyleRuns(r Range) []StyleSpan {
	if r.IsEmpty() {
		return nil
	}
	cuts := []int{r.Start, r.End}
	for _, sp := range t.Spans {
		for _, edge := range []int{sp.Range.Start, sp.Range.End} {
			if edge > r.Start && edge < r.End {
				cuts = append(cuts, edge)
			}
		}
	}
	slices.Sort(cuts)
	out := make([]StyleSpan, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		if cuts[i] == cuts[i+1] {
			continue
		}
		seg := Range{Start: cuts[i], End: cuts[i+1]}
		st := t.StyleAt(seg.Start)
		if n := len(out); n > 0 && out[n-1].Style == st {
			out[n-1].Range.End = seg.End
			continue
		}
		out = append(out, StyleSpan{Range: seg, Style: st})
	}
	return out
}

// Attachment 是行内的不透明对象（图片、控件占位等），Range 为文档绝对偏移。
// 调用方持有其所有权，排版期间只做引用。
type Attachment struct {
	Name    string  `json:"name"`
	Range   Range   `json:"range"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Descent float64 `json:"descent"`
}

// RunKind 区分文本 run 与附件 run。
type RunKind int

const (
	RunText RunKind = iota
	RunAttachment
)

func (k RunKind) String() string {
	if k == RunAttachment {
		return "attachment"
	}
	return "text"
}

// Run 是一条逻辑行内同类内容的最大连续片段，Range 为文档绝对偏移。
type Run struct {
	Kind       RunKind
	Range      Range
	Attachment *Attachment
}

// GlyphRun 是一段已整形、单一样式的字形串，X 相对所在 ShapedLine 的起点。
type GlyphRun struct {
	Range Range   `json:"range"`
	Text  string  `json:"text"`
	Style Style   `json:"style"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// ShapedLine 是整形器对一段文本的测量结果。Range 相对于行首。
type ShapedLine struct {
	Range   Range      `json:"range"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Descent float64    `json:"descent"`
	Glyphs  []GlyphRun `json:"glyphs,omitempty"`
}

// PieceKind 区分 fragment 中的文本与附件。
type PieceKind int

const (
	PieceText PieceKind = iota
	PieceAttachment
)

// Piece 是 fragment 的组成单元，Range 为文档绝对偏移。
type Piece struct {
	Kind       PieceKind   `json:"kind"`
	Range      Range       `json:"range"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Descent    float64     `json:"descent"`
	Line       *ShapedLine `json:"line,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Fragment 是一条逻辑行折行后的一个可视子行，构建后不再修改。
type Fragment struct {
	Pieces             []Piece `json:"pieces"`
	Width              float64 `json:"width"`
	Height             float64 `json:"height"`
	Descent            float64 `json:"descent"`
	LineHeightMultiple float64 `json:"lineHeightMultiple"`
}

// Range 返回 fragment 覆盖的文档区间。
func (f *Fragment) Range() Range {
	if len(f.Pieces) == 0 {
		return Range{}
	}
	return Range{Start: f.Pieces[0].Range.Start, End: f.Pieces[len(f.Pieces)-1].Range.End}
}

// Len 返回 fragment 覆盖的字节数。
func (f *Fragment) Len() int { return f.Range().Len() }

// BuildItem 是重建 FragmentCollection 的输入：fragment、字节长度与缩放后的高度。
type BuildItem struct {
	Fragment *Fragment
	Length   int
	Height   float64
}

// Point 是二维坐标（mm），y 轴向下。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect 表示一个轴对齐矩形（mm）。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// IsEmpty 当宽或高不为正时返回 true。
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Intersect 返回两个矩形的交集，不相交时返回零矩形。
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Insets 描述绘制区域四周的留白（mm）。
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}
