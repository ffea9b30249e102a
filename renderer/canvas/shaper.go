package canvasrenderer

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/galley/compose"
	"github.com/ByLCY/galley/fonts"
	"github.com/ByLCY/galley/layout"
)

const defaultSizeMM = 11 * compose.PtToMm

// SuggestBreak 实现 layout.Shaper：宽度按各样式段的实际字形宽度累加。
func (r *Renderer) SuggestBreak(content layout.StyledText, strategy layout.LineBreakStrategy, sub layout.Range, budget float64) int {
	text := content.Text[sub.Start:sub.End]
	width := func(prefix string) float64 {
		return r.Measure(content, layout.Range{Start: sub.Start, End: sub.Start + len(prefix)}).Width
	}
	return layout.SuggestGreedyBreak(text, strategy, budget, width)
}

// Measure 实现 layout.Shaper。行高与下沉取各样式段字体度量的最大值；
// r 为空时按行首样式给出空行高度。行尾换行符不计宽度。
func (r *Renderer) Measure(content layout.StyledText, rng layout.Range) layout.ShapedLine {
	line := layout.ShapedLine{Range: rng}
	runs := content.StyleRuns(rng)
	if len(runs) == 0 {
		face := r.face(content.StyleAt(rng.Start))
		m := face.Metrics()
		line.Height, line.Descent = m.LineHeight, m.Descent
		return line
	}
	var x float64
	for _, sp := range runs {
		face := r.face(sp.Style)
		text := content.Text[sp.Range.Start:sp.Range.End]
		w := face.TextWidth(layout.TrimLineEnd(text))
		m := face.Metrics()
		line.Height = max(line.Height, m.LineHeight)
		line.Descent = max(line.Descent, m.Descent)
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

// face 返回样式对应的字体面。Style.Font 是字体来源（builtin:*、embed:* 或路径）。
func (r *Renderer) face(style layout.Style) *canvas.FontFace {
	size := style.Size
	if size <= 0 {
		size = defaultSizeMM
	}
	return r.family(style.Font).Face(toPt(size), colorFromLayout(style.Color), canvas.FontRegular, canvas.FontNormal)
}

// family 按来源缓存字体族；加载失败时回退到内置字体。
func (r *Renderer) family(src string) *canvas.FontFamily {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if fam, ok := r.families[src]; ok {
		return fam
	}
	fam := canvas.NewFontFamily(src)
	data, err := r.loadFontBytes(src)
	if err == nil {
		err = fam.LoadFont(data, 0, canvas.FontRegular)
	}
	if err != nil {
		tracer().Errorf("render: font %q unavailable, using fallback: %v", src, err)
		fam = r.fallback()
	}
	r.families[src] = fam
	return fam
}

func (r *Renderer) loadFontBytes(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("字体缺少 src")
	}
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "built-in:") || strings.HasPrefix(lower, "builtin:") || strings.HasPrefix(lower, "embed:") {
		name := src[strings.IndexByte(src, ':')+1:]
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return fonts.Load(src)
	}
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 builtin: 或 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

// fallback 在持有 fontMu 时调用。
func (r *Renderer) fallback() *canvas.FontFamily {
	if r.fallbackFamily != nil {
		return r.fallbackFamily
	}
	fam := canvas.NewFontFamily("galley-fallback")
	data, err := fonts.Load(fonts.Default)
	if err == nil {
		err = fam.LoadFont(data, 0, canvas.FontRegular)
	}
	if err != nil {
		// gofont 随二进制一起编译，加载失败说明构建本身有问题。
		panic(fmt.Sprintf("内置字体 %s 无法加载: %v", fonts.Default, err))
	}
	r.fallbackFamily = fam
	return fam
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return compose.Length{Value: mm, Unit: compose.UnitMM}.PT() }
