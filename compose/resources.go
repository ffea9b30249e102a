package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/galley/dsl"
	"github.com/ByLCY/galley/layout"
)

const (
	defaultFontName = "Body"
	defaultFontSrc  = "builtin:go-regular"
	defaultFontSize = 11 * PtToMm
)

var defaultTextColor = layout.Color{R: 30, G: 30, B: 30}

func collectResources(doc *dsl.Document) (ResourceSet, error) {
	res := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]layout.Color{},
		Styles: map[string]StyleDef{},
	}
	rawStyles := map[string]StyleDef{}

	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			switch stmt.Command.Name {
			case "font":
				font := parseFontResource(stmt.Command)
				if font.Name != "" {
					res.Fonts[font.Name] = font
				}
			case "color":
				name, value := parseColorResource(stmt.Command)
				if name == "" || value == "" {
					continue
				}
				c, err := parseColor(value)
				if err != nil {
					return res, fmt.Errorf("color %s: %w", name, err)
				}
				res.Colors[name] = c
			case "style":
				style := parseStyleResource(stmt.Command)
				if style.Name != "" {
					rawStyles[style.Name] = style
				}
			}
		}
	}

	if _, ok := res.Fonts[defaultFontName]; !ok {
		res.Fonts[defaultFontName] = FontResource{Name: defaultFontName, Src: defaultFontSrc}
	}

	resolved, err := resolveStyles(rawStyles)
	if err != nil {
		return res, err
	}
	res.Styles = resolved
	return res, nil
}

func collectMeta(doc *dsl.Document) DocumentMeta {
	meta := DocumentMeta{Creator: "Galley"}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = valueToString(stmt.Assignment.Value)
			case "author":
				meta.Author = valueToString(stmt.Assignment.Value)
			case "subject":
				meta.Subject = valueToString(stmt.Assignment.Value)
			case "creator":
				meta.Creator = valueToString(stmt.Assignment.Value)
			case "keywords":
				meta.Keywords = valueToStringSlice(stmt.Assignment.Value)
			}
		}
	}
	return meta
}

func parseFontResource(cmd *dsl.Command) FontResource {
	if len(cmd.Args) == 0 {
		return FontResource{}
	}
	font := FontResource{Name: cmd.Args[0].Value}
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			if stmt.Assignment != nil && stmt.Assignment.Key == "src" {
				font.Src = valueToString(stmt.Assignment.Value)
			}
		}
	}
	if font.Src == "" {
		font.Src = defaultFontSrc
	}
	return font
}

// parseColorResource 接受 `color Name #hex` 与 `color Name = #hex` 两种写法。
func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value
	}
	return name, value
}

func parseStyleResource(cmd *dsl.Command) StyleDef {
	if len(cmd.Args) == 0 {
		return StyleDef{}
	}
	style := StyleDef{
		Name:  cmd.Args[0].Value,
		Props: map[string]string{},
	}
	if len(cmd.Args) >= 3 && strings.EqualFold(cmd.Args[1].Value, "extends") {
		style.Extends = cmd.Args[2].Value
	}
	if cmd.Block == nil {
		return style
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		if val := valueToString(stmt.Assignment.Value); val != "" {
			style.Props[stmt.Assignment.Key] = val
		}
	}
	return style
}

func resolveStyles(styles map[string]StyleDef) (map[string]StyleDef, error) {
	resolved := map[string]StyleDef{}
	visiting := map[string]bool{}

	var dfs func(name string) (StyleDef, error)
	dfs = func(name string) (StyleDef, error) {
		if style, ok := resolved[name]; ok {
			return style, nil
		}
		style, ok := styles[name]
		if !ok {
			return StyleDef{}, fmt.Errorf("style %s 未定义", name)
		}
		if visiting[name] {
			return StyleDef{}, fmt.Errorf("style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if style.Extends != "" {
			parent, err := dfs(style.Extends)
			if err != nil {
				return StyleDef{}, err
			}
			for k, v := range parent.Props {
				props[k] = v
			}
		}
		for k, v := range style.Props {
			props[k] = v
		}
		style.Props = props
		resolved[name] = style
		delete(visiting, name)
		return style, nil
	}

	for name := range styles {
		if _, err := dfs(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// textStyle 将命名样式解析为排版使用的 layout.Style。
// 未声明的样式名按字体名处理，都找不到时使用默认字体。
func (res ResourceSet) textStyle(name string) layout.Style {
	props := map[string]string{}
	if def, ok := res.Styles[name]; ok {
		props = def.Props
	} else if _, ok := res.Fonts[name]; ok {
		props = map[string]string{"font": name}
	}

	font := res.Fonts[defaultFontName]
	if f, ok := res.Fonts[props["font"]]; ok {
		font = f
	}
	size := parseMM(props["size"])
	if size <= 0 {
		size = defaultFontSize
	}
	return layout.Style{
		Font:      font.Src,
		Size:      size,
		Color:     res.color(props["color"], defaultTextColor),
		Underline: isTrue(props["underline"]),
	}
}

// color 按颜色资源名或 #hex 解析，失败时返回 fallback。
func (res ResourceSet) color(value string, fallback layout.Color) layout.Color {
	if value == "" {
		return fallback
	}
	if c, ok := res.Colors[value]; ok {
		return c
	}
	if c, err := parseColor(value); err == nil {
		return c
	}
	return fallback
}

func parseColor(value string) (layout.Color, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		return layout.Color{
			R: mustHex(strings.Repeat(value[0:1], 2)),
			G: mustHex(strings.Repeat(value[1:2], 2)),
			B: mustHex(strings.Repeat(value[2:3], 2)),
		}, nil
	case 6, 8:
		return layout.Color{
			R: mustHex(value[0:2]),
			G: mustHex(value[2:4]),
			B: mustHex(value[4:6]),
		}, nil
	default:
		return layout.Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func mustHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 64)
	return int(v)
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		return val.Expr.String()
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}
