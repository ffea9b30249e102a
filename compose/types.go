package compose

import (
	"github.com/ByLCY/galley/layout"
	"github.com/ByLCY/galley/selection"
)

// 该文件定义组版结果与资源描述，供渲染器、inspect 命令与调试 JSON 共用。

// Result 保存一个视图排版后的全部几何信息。
type Result struct {
	Meta       DocumentMeta   `json:"meta"`
	Resources  ResourceSet    `json:"resources"`
	View       ViewBox        `json:"view"`
	Lines      []LineBox      `json:"lines"`
	Selections []SelectionBox `json:"selections,omitempty"`

	// Layout 是底层的文档布局，供需要再次查询偏移的调用方使用。
	Layout *layout.Layout `json:"-"`
}

// DocumentMeta 对应 meta 段。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords,omitempty"`
}

// ResourceSet 记录解析出的字体、颜色与样式定义。
type ResourceSet struct {
	Fonts  map[string]FontResource `json:"fonts"`
	Colors map[string]layout.Color `json:"colors"`
	Styles map[string]StyleDef     `json:"styles"`
}

// FontResource 描述字体资源，src 可以是文件路径或 builtin:*、embed:* 形式。
type FontResource struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

// StyleDef 是 resources 中声明的样式，Props 在 extends 解析后已合并父样式。
type StyleDef struct {
	Name    string            `json:"name"`
	Extends string            `json:"extends,omitempty"`
	Props   map[string]string `json:"props"`
}

// ViewBox 描述视图的尺寸、留白、显示配置与配色。单位均为 mm。
type ViewBox struct {
	Width          float64              `json:"width"`
	Height         float64              `json:"height"`
	Bounds         layout.Rect          `json:"bounds"`
	Insets         layout.Insets        `json:"insets"`
	Config         layout.DisplayConfig `json:"config"`
	Scale          float64              `json:"scale"`
	Radius         float64              `json:"radius"`
	Background     *layout.Color        `json:"background,omitempty"`
	SelectionColor layout.Color         `json:"selectionColor"`
	OutlineColor   layout.Color         `json:"outlineColor"`
	OutlineWidth   float64              `json:"outlineWidth"`
}

// LineBox 是一条逻辑行及其 fragment。
type LineBox struct {
	Index     int           `json:"index"`
	Range     layout.Range  `json:"range"`
	Y         float64       `json:"y"`
	Height    float64       `json:"height"`
	Fragments []FragmentBox `json:"fragments"`
}

// FragmentBox 是一个可直接绘制的子行，Baseline 为基线的视图 y 坐标。
type FragmentBox struct {
	Range    layout.Range `json:"range"`
	Rect     layout.Rect  `json:"rect"`
	Baseline float64      `json:"baseline"`
	Pieces   []PieceBox   `json:"pieces"`
}

// PieceBox 是 fragment 中的一段文本或一个附件，X 为视图坐标。
type PieceBox struct {
	Kind       layout.PieceKind  `json:"kind"`
	Range      layout.Range      `json:"range"`
	X          float64           `json:"x"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Descent    float64           `json:"descent"`
	Glyphs     []layout.GlyphRun `json:"glyphs,omitempty"`
	Attachment string            `json:"attachment,omitempty"`
}

// SelectionBox 是一个 select 语句的高亮几何。
type SelectionBox struct {
	Range     layout.Range   `json:"range"`
	FillRects []layout.Rect  `json:"fillRects"`
	Points    []layout.Point `json:"points,omitempty"`
	Outline   selection.Path `json:"outline"`
}
