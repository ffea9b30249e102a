package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/ByLCY/galley/compose"
	"github.com/ByLCY/galley/dsl"
	"github.com/ByLCY/galley/fonts"
	"github.com/ByLCY/galley/layout"
)

var body = layout.Style{Font: "builtin:go-regular", Size: 12 * compose.PtToMm}

func styled(s string) layout.StyledText {
	return layout.StyledText{Text: s, Default: body}
}

func TestMeasureUsesFontMetrics(t *testing.T) {
	r := NewRenderer(".")
	content := styled("hello world")
	short := r.Measure(content, layout.Range{Start: 0, End: 5})
	long := r.Measure(content, layout.Range{Start: 0, End: 11})
	if short.Width <= 0 || long.Width <= short.Width {
		t.Fatalf("expected growing widths, got %g then %g", short.Width, long.Width)
	}
	if short.Height <= 0 || short.Descent <= 0 {
		t.Fatalf("expected font metrics in measurement: %+v", short)
	}
	empty := r.Measure(content, layout.Range{})
	if empty.Width != 0 || empty.Height != short.Height {
		t.Fatalf("empty measurement should keep the line height: %+v", empty)
	}
}

func TestMeasureSplitsStyles(t *testing.T) {
	r := NewRenderer(".")
	bold := body
	bold.Font = "builtin:go-bold"
	content := styled("plain bold")
	content.Spans = []layout.StyleSpan{{Range: layout.Range{Start: 6, End: 10}, Style: bold}}
	line := r.Measure(content, layout.Range{Start: 0, End: 10})
	if len(line.Glyphs) != 2 {
		t.Fatalf("expected 2 glyph runs, got %d", len(line.Glyphs))
	}
	if line.Glyphs[1].X != line.Glyphs[0].Width {
		t.Fatalf("second run should start where the first ends: %+v", line.Glyphs)
	}
}

func TestSuggestBreakWrapsWords(t *testing.T) {
	r := NewRenderer(".")
	content := styled("hello world again")
	all := layout.Range{Start: 0, End: len(content.Text)}
	n := r.SuggestBreak(content, layout.BreakWord, all, 10)
	if n <= 0 || n >= len(content.Text) {
		t.Fatalf("expected a partial break, got %d", n)
	}
	visible := len(layout.HangingTrim(content.Text[:n]))
	if got := r.Measure(content, layout.Range{Start: 0, End: visible}).Width; got > 10 {
		t.Fatalf("visible part of the suggested prefix is wider than the budget: %g", got)
	}
	if n := r.SuggestBreak(content, layout.BreakClip, all, 10); n != len(content.Text) {
		t.Fatalf("clip strategy should take the whole text, got %d", n)
	}
}

// 文本宽度恰好等于最大宽度、后面紧跟换行符时，不应再拆出一个 fragment。
func TestNoExtraFragmentWhenEqualWidthThenNewline(t *testing.T) {
	r := NewRenderer(".")
	first := "SAMPLE-A"
	limit := r.Measure(styled(first), layout.Range{Start: 0, End: len(first)}).Width
	if limit <= 0 {
		t.Fatalf("invalid measured width: %g", limit)
	}
	content := styled(first + "\n")
	cfg := layout.DisplayConfig{MaxWidth: limit}
	items := layout.TypesetLine(content, layout.Range{Start: 0, End: len(content.Text)}, cfg, nil, r)
	if len(items) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(items))
	}
}

func TestInjectedFontsResolveAsBuiltin(t *testing.T) {
	data, err := fonts.Load("go-mono")
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{"Code": {Bytes: data}}})
	blob, err := r.loadFontBytes("builtin:Code")
	if err != nil || !bytes.Equal(blob, data) {
		t.Fatalf("injected font not used: %v", err)
	}
	if _, err := r.loadFontBytes("relative/font.ttf"); err == nil {
		t.Fatalf("relative paths need a base directory")
	}
}

func TestUnknownFontFallsBack(t *testing.T) {
	r := NewRenderer(".")
	style := body
	style.Font = "missing/font.ttf"
	line := r.Measure(layout.StyledText{Text: "abc", Default: style}, layout.Range{Start: 0, End: 3})
	if line.Width <= 0 {
		t.Fatalf("fallback font should still measure text: %+v", line)
	}
}

const renderDSL = `
doc R v1 {
  meta {
    title: "Render"
  }
  view 60mm {
    inset: 3mm
    para {
      "The quick brown fox jumps over the lazy dog."
    }
    para {
      attach chip 6mm 3mm
      " tail"
    }
    select 4 50
    mark 0 3
  }
}
`

func TestRenderProducesPDF(t *testing.T) {
	doc, err := dsl.ParseString(renderDSL)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewRenderer(".")
	res, err := compose.Build(doc, nil, compose.BuildOptions{Shaper: r})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Selections) != 1 || len(res.Selections[0].FillRects) == 0 {
		t.Fatalf("expected selection geometry: %+v", res.Selections)
	}
	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer(".")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&compose.Result{}); err == nil {
		t.Fatalf("expected error for zero-sized view")
	}
}
