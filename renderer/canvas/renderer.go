// Package canvasrenderer 用 github.com/tdewolff/canvas 测量文本并把组版结果绘制为 PDF。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/galley/compose"
	"github.com/ByLCY/galley/layout"
	"github.com/ByLCY/galley/renderer"
	"github.com/ByLCY/galley/selection"
)

const (
	attachmentStroke = 0.2
	underlineRatio   = 0.06
)

var (
	attachmentColor = layout.Color{R: 120, G: 120, B: 120}
	transparent     = color.RGBA{0, 0, 0, 0}
)

func tracer() tracing.Trace {
	return tracing.Select("galley.render")
}

// Renderer 既是 canvas 字体度量的 Shaper，也是 PDF 渲染器。
type Renderer struct {
	baseDir string

	// 注入的字体，按名称索引，可用 builtin:<name> 引用
	fontBlobs map[string][]byte

	fontMu         sync.Mutex
	families       map[string]*canvas.FontFamily
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Shaper     = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // 通过 builtin:<name> 访问
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving font paths.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected fonts and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:   opts.BaseDir,
		fontBlobs: map[string][]byte{},
		families:  map[string]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			// 读取失败留到实际使用时回退
			if data, err := os.ReadFile(res.Path); err == nil && len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Render 将组版结果绘制为单页 PDF。绘制顺序：背景、选区填充、文本与附件、选区轮廓。
func (r *Renderer) Render(result *compose.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	w, h := result.View.Width, result.View.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("视图尺寸无效: %gx%g", w, h)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	applyMeta(writer, result.Meta)

	c := canvas.New(w, h)
	d := &drawer{r: r, ctx: canvas.NewContext(c), height: h}
	if bg := result.View.Background; bg != nil {
		d.fillRect(layout.Rect{Width: w, Height: h}, *bg)
	}
	for _, sel := range result.Selections {
		for _, rect := range sel.FillRects {
			d.fillRect(rect, result.View.SelectionColor)
		}
	}
	for _, line := range result.Lines {
		for _, frag := range line.Fragments {
			d.drawFragment(frag)
		}
	}
	for _, sel := range result.Selections {
		d.strokeOutline(sel.Outline, result.View.OutlineColor, result.View.OutlineWidth)
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	tracer().Infof("render: %d lines, %d selections, %d bytes", len(result.Lines), len(result.Selections), buf.Len())
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta compose.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawer 在 y 轴向上的 canvas 坐标中绘制 y 轴向下的视图坐标。
type drawer struct {
	r      *Renderer
	ctx    *canvas.Context
	height float64
}

func (d *drawer) flip(p layout.Point) layout.Point {
	return layout.Point{X: p.X, Y: d.height - p.Y}
}

func (d *drawer) fillRect(rect layout.Rect, c layout.Color) {
	if rect.IsEmpty() {
		return
	}
	d.ctx.SetFillColor(colorFromLayout(c))
	d.ctx.SetStrokeColor(transparent)
	d.ctx.DrawPath(rect.X, d.height-rect.MaxY(), canvas.Rectangle(rect.Width, rect.Height))
}

func (d *drawer) drawFragment(frag compose.FragmentBox) {
	y := d.height - frag.Baseline
	for _, p := range frag.Pieces {
		switch p.Kind {
		case layout.PieceAttachment:
			top := frag.Baseline - (p.Height - p.Descent)
			d.ctx.SetFillColor(transparent)
			d.ctx.SetStrokeColor(colorFromLayout(attachmentColor))
			d.ctx.SetStrokeWidth(attachmentStroke)
			d.ctx.DrawPath(p.X, d.height-(top+p.Height), canvas.Rectangle(p.Width, p.Height))
		default:
			for _, g := range p.Glyphs {
				text := layout.TrimLineEnd(g.Text)
				if text == "" {
					continue
				}
				face := d.r.face(g.Style)
				d.ctx.DrawText(g.X, y, canvas.NewTextLine(face, text, canvas.Left))
				if g.Style.Underline {
					d.underline(g, y)
				}
			}
		}
	}
}

func (d *drawer) underline(g layout.GlyphRun, baseline float64) {
	size := g.Style.Size
	if size <= 0 {
		size = defaultSizeMM
	}
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(g.Width, 0)
	d.ctx.SetFillColor(transparent)
	d.ctx.SetStrokeColor(colorFromLayout(g.Style.Color))
	d.ctx.SetStrokeWidth(size * underlineRatio)
	d.ctx.DrawPath(g.X, baseline-size*0.1, p)
}

func (d *drawer) strokeOutline(outline selection.Path, c layout.Color, width float64) {
	if outline.Empty() || width <= 0 {
		return
	}
	flipped := outline.Map(d.flip)
	d.ctx.SetFillColor(transparent)
	d.ctx.SetStrokeColor(colorFromLayout(c))
	d.ctx.SetStrokeWidth(width)
	d.ctx.DrawPath(0, 0, flipped.ToCanvas())
}
