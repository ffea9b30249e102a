package layout

import "strings"

// Shaper 是文本测量与断行建议的后端。
// 偏移均相对于 content 的行首；sub 与 r 不会越过 content.Text。
type Shaper interface {
	// SuggestBreak 返回从 sub.Start 起、在 budget 宽度内可放下的字节数。
	SuggestBreak(content StyledText, strategy LineBreakStrategy, sub Range, budget float64) int
	// Measure 测量 r 对应的子行；r 为空时返回行首样式的空行高度。
	Measure(content StyledText, r Range) ShapedLine
}

// LineBreakStrategy 选择断行策略。
type LineBreakStrategy int

const (
	BreakWord LineBreakStrategy = iota // 优先在 UAX#14 断点处断行
	BreakChar                          // 在任意字素簇边界断行
	BreakClip                          // 不按宽度断行
	// BreakWordOnly 只在 UAX#14 断点处断行，放不下完整的词时建议长度为 0。
	// 排版器在同一 fragment 已有附件等内容时使用它，让放不下的词整体换行。
	BreakWordOnly
)

func (s LineBreakStrategy) String() string {
	switch s {
	case BreakChar:
		return "char"
	case BreakClip:
		return "clip"
	case BreakWordOnly:
		return "word-only"
	default:
		return "word"
	}
}

// ParseLineBreak 解析 DSL 中的 wrap 取值，未知值回落到 word。
func ParseLineBreak(v string) LineBreakStrategy {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "char", "anywhere", "break-word":
		return BreakChar
	case "clip", "nowrap", "none":
		return BreakClip
	case "word-only", "strict":
		return BreakWordOnly
	default:
		return BreakWord
	}
}

// StyleOverlay 描述叠加在输入法标记区间上的属性。
type StyleOverlay struct {
	Underline bool   `json:"underline"`
	Color     *Color `json:"color,omitempty"`
}

// Apply 返回叠加后的样式。
func (o StyleOverlay) Apply(s Style) Style {
	if o.Underline {
		s.Underline = true
	}
	if o.Color != nil {
		s.Color = *o.Color
	}
	return s
}

// DisplayConfig 是一次排版调用使用的显示配置，调用期间调用方不得修改。
type DisplayConfig struct {
	MaxWidth            float64           `json:"maxWidth"`
	EstimatedLineHeight float64           `json:"estimatedLineHeight"`
	LineHeightMultiple  float64           `json:"lineHeightMultiple"`
	LineBreak           LineBreakStrategy `json:"lineBreak"`
	MarkedRanges        []Range           `json:"markedRanges,omitempty"` // 文档绝对偏移
	MarkedStyle         StyleOverlay      `json:"markedStyle"`
}

func (c DisplayConfig) multiple() float64 {
	if c.LineHeightMultiple <= 0 {
		return 1
	}
	return c.LineHeightMultiple
}
