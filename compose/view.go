package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/galley/binding"
	"github.com/ByLCY/galley/dsl"
	"github.com/ByLCY/galley/layout"
)

// ObjectReplacement 是附件在文本中占用的占位字符。
const ObjectReplacement = "\uFFFC"

const (
	defaultViewWidth    = 100.0
	defaultOutlineWidth = 0.3
	estimateFactor      = 1.2
)

var (
	defaultSelectionColor = layout.Color{R: 180, G: 213, B: 255}
	defaultOutlineColor   = layout.Color{R: 15, G: 98, B: 254}
)

// viewSpec 是 view 段解析后的中间结果。
type viewSpec struct {
	width          float64
	insets         layout.Insets
	cfg            layout.DisplayConfig
	scale          float64
	radius         float64
	background     *layout.Color
	selectionColor layout.Color
	outlineColor   layout.Color
	outlineWidth   float64
	sources        []layout.LineSource
	selections     []layout.Range
	// lineHeight 为绝对行高(mm)，0 表示未指定。
	lineHeight float64
	base       layout.Style
}

// resolveLineHeight 将绝对行高换算为相对于基础样式实测行高的倍数。
func (v *viewSpec) resolveLineHeight(shaper layout.Shaper) {
	if v.lineHeight <= 0 {
		return
	}
	m := shaper.Measure(layout.StyledText{Default: v.base}, layout.Range{})
	if m.Height <= 0 {
		return
	}
	v.cfg.LineHeightMultiple = v.lineHeight / m.Height
	tracer().Debugf("line-height %.3fmm -> multiple %.3f", v.lineHeight, v.cfg.LineHeightMultiple)
}

func firstView(doc *dsl.Document) *dsl.ViewSection {
	for _, section := range doc.Sections {
		if section.View != nil {
			return section.View
		}
	}
	return nil
}

func parseView(section *dsl.ViewSection, res ResourceSet, data any) (*viewSpec, error) {
	v := &viewSpec{
		width:          defaultViewWidth,
		selectionColor: defaultSelectionColor,
		outlineColor:   defaultOutlineColor,
		outlineWidth:   defaultOutlineWidth,
	}
	v.cfg.MarkedStyle.Underline = true
	for _, p := range section.Params {
		if l, ok := ParseLength(p.Value); ok && l.Unit != UnitFactor {
			v.width = l.MM()
			break
		}
	}

	styleName := defaultFontName
	var lineHeight *LineHeightSpec
	var paras []*dsl.Command
	var stmts []*dsl.Statement
	if section.Block != nil {
		stmts = section.Block.Statements
	}
	for _, stmt := range stmts {
		switch {
		case stmt.Assignment != nil:
			a := stmt.Assignment
			val := valueToString(a.Value)
			switch strings.ToLower(a.Key) {
			case "width":
				v.width = parseMM(val)
			case "inset", "insets", "padding":
				v.insets = parseInsets(valueToStringSlice(a.Value))
			case "line-height":
				lh, ok := ParseLineHeight(val)
				if !ok {
					return nil, fmt.Errorf("line-height %q 无法解析", val)
				}
				lineHeight = &lh
			case "wrap":
				v.cfg.LineBreak = layout.ParseLineBreak(val)
			case "scale":
				f, err := strconv.ParseFloat(val, 64)
				if err != nil {
					return nil, fmt.Errorf("scale %q 无法解析: %w", val, err)
				}
				v.scale = f
			case "radius":
				v.radius = parseMM(val)
			case "style":
				styleName = val
			case "marked":
				v.cfg.MarkedStyle.Underline = strings.EqualFold(val, "underline")
			case "marked-color":
				c := res.color(val, defaultTextColor)
				v.cfg.MarkedStyle.Color = &c
			case "selection-color":
				v.selectionColor = res.color(val, defaultSelectionColor)
			case "outline-color":
				v.outlineColor = res.color(val, defaultOutlineColor)
			case "outline-width":
				v.outlineWidth = parseMM(val)
			case "background":
				c := res.color(val, layout.Color{R: 255, G: 255, B: 255})
				v.background = &c
			}
		case stmt.Command != nil:
			cmd := stmt.Command
			switch cmd.Name {
			case "para", "p":
				paras = append(paras, cmd)
			case "select":
				r, err := parseRangeArgs(cmd)
				if err != nil {
					return nil, err
				}
				v.selections = append(v.selections, r)
			case "mark":
				r, err := parseRangeArgs(cmd)
				if err != nil {
					return nil, err
				}
				v.cfg.MarkedRanges = append(v.cfg.MarkedRanges, r)
			default:
				return nil, fmt.Errorf("%s: view 中不支持的命令 %s", cmd.Pos, cmd.Name)
			}
		}
	}

	base := res.textStyle(styleName)
	v.base = base
	v.cfg.MaxWidth = v.width
	v.cfg.EstimatedLineHeight = base.Size * estimateFactor
	v.cfg.LineHeightMultiple = 1
	if lineHeight != nil {
		switch lineHeight.Kind {
		case LineHeightFactor:
			v.cfg.LineHeightMultiple = lineHeight.Factor
		case LineHeightAbsolute:
			v.lineHeight = lineHeight.Len.MM()
			v.cfg.EstimatedLineHeight = v.lineHeight
		}
	}

	offset := 0
	for i, cmd := range paras {
		src, err := composeParagraph(cmd, styleName, res, data, offset, i == len(paras)-1)
		if err != nil {
			return nil, err
		}
		v.sources = append(v.sources, src)
		offset += len(src.Content.Text)
	}
	return v, nil
}

// parseInsets 按 CSS 的 1~4 值语义解析留白。
func parseInsets(values []string) layout.Insets {
	var vals []float64
	for _, s := range values {
		for _, f := range strings.Fields(s) {
			if l, ok := ParseLength(f); ok && len(vals) < 4 {
				vals = append(vals, l.MM())
			}
		}
	}
	switch len(vals) {
	case 1:
		return layout.Insets{Top: vals[0], Right: vals[0], Bottom: vals[0], Left: vals[0]}
	case 2:
		return layout.Insets{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 3:
		return layout.Insets{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
	case 4:
		return layout.Insets{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	}
	return layout.Insets{}
}

func parseRangeArgs(cmd *dsl.Command) (layout.Range, error) {
	if len(cmd.Args) != 2 {
		return layout.Range{}, fmt.Errorf("%s: %s 需要起止两个偏移", cmd.Pos, cmd.Name)
	}
	start, err := strconv.Atoi(cmd.Arg(0))
	if err != nil {
		return layout.Range{}, fmt.Errorf("%s: %s 起点无效: %w", cmd.Pos, cmd.Name, err)
	}
	end, err := strconv.Atoi(cmd.Arg(1))
	if err != nil {
		return layout.Range{}, fmt.Errorf("%s: %s 终点无效: %w", cmd.Pos, cmd.Name, err)
	}
	if start < 0 || end < start {
		return layout.Range{}, fmt.Errorf("%s: %s 区间 [%d,%d) 无效", cmd.Pos, cmd.Name, start, end)
	}
	return layout.Range{Start: start, End: end}, nil
}

// paragraph 收集一段的文本、样式区间与附件，偏移相对于段首。
type paragraph struct {
	res         ResourceSet
	data        any
	base        int
	def         layout.Style
	text        strings.Builder
	spans       []layout.StyleSpan
	attachments []layout.Attachment
}

func composeParagraph(cmd *dsl.Command, styleName string, res ResourceSet, data any, base int, last bool) (layout.LineSource, error) {
	if name := cmd.Arg(0); name != "" {
		styleName = name
	}
	p := &paragraph{res: res, data: data, base: base, def: res.textStyle(styleName)}
	if err := p.appendBlock(cmd.Block, p.def); err != nil {
		return layout.LineSource{}, err
	}
	if !last {
		p.text.WriteString("\n")
	}
	return layout.LineSource{
		Content: layout.StyledText{
			Text:    p.text.String(),
			Spans:   p.spans,
			Default: p.def,
		},
		Attachments: p.attachments,
	}, nil
}

func (p *paragraph) appendBlock(block *dsl.Block, style layout.Style) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		switch {
		case stmt.Text != nil:
			p.appendText(string(stmt.Text.Value), style)
		case stmt.Command != nil:
			if err := p.appendCommand(stmt.Command, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *paragraph) appendText(s string, style layout.Style) {
	s = binding.Interpolate(s, p.data)
	// 一段对应一条逻辑行，段内换行折叠为空格。
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	if s == "" {
		return
	}
	start := p.text.Len()
	p.text.WriteString(s)
	if style != p.def {
		p.spans = append(p.spans, layout.StyleSpan{
			Range: layout.Range{Start: start, End: p.text.Len()},
			Style: style,
		})
	}
}

func (p *paragraph) appendCommand(cmd *dsl.Command, style layout.Style) error {
	switch cmd.Name {
	case "span":
		if name := cmd.Arg(0); name != "" {
			style = p.res.textStyle(name)
		}
		return p.appendBlock(cmd.Block, style)
	case "attach":
		return p.appendAttachment(cmd)
	default:
		return fmt.Errorf("%s: para 中不支持的命令 %s", cmd.Pos, cmd.Name)
	}
}

// appendAttachment 解析 `attach name width height [descent d]`。
func (p *paragraph) appendAttachment(cmd *dsl.Command) error {
	if len(cmd.Args) < 3 {
		return fmt.Errorf("%s: attach 需要名称、宽度与高度", cmd.Pos)
	}
	att := layout.Attachment{
		Name:   cmd.Arg(0),
		Width:  parseMM(cmd.Arg(1)),
		Height: parseMM(cmd.Arg(2)),
	}
	for i := 3; i < len(cmd.Args); i += 2 {
		if cmd.Arg(i) == "descent" {
			att.Descent = parseMM(cmd.Arg(i + 1))
		}
	}
	if att.Width <= 0 || att.Height <= 0 {
		return fmt.Errorf("%s: attach %s 尺寸必须为正", cmd.Pos, att.Name)
	}
	start := p.text.Len()
	p.text.WriteString(ObjectReplacement)
	att.Range = layout.Range{Start: start, End: p.text.Len()}.Shift(p.base)
	p.attachments = append(p.attachments, att)
	return nil
}
