// Command galley 解析 galley DSL 文档，排版为 fragment 并输出 PDF 或排版摘要。
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ByLCY/galley/compose"
	"github.com/ByLCY/galley/dsl"
	"github.com/ByLCY/galley/layout"
	"github.com/ByLCY/galley/renderer"
	canvasrenderer "github.com/ByLCY/galley/renderer/canvas"
	"github.com/ByLCY/galley/shaper/cell"
)

// CLI 定义命令行接口。
var CLI struct {
	Render  RenderCmd  `cmd:"" help:"排版并渲染为 PDF"`
	Inspect InspectCmd `cmd:"" help:"打印每一行的 fragment 划分与选区矩形"`
}

// SourceFlags 是两个命令共用的输入参数。
type SourceFlags struct {
	In        string  `name:"in" required:"" type:"existingfile" help:"DSL 文件路径"`
	Data      string  `name:"data" help:"绑定到 DSL 的 JSON 数据"`
	Backend   string  `name:"backend" enum:"canvas,cell" default:"canvas" help:"排版后端：canvas（字体度量）或 cell（等宽单元格）"`
	CellWidth float64 `name:"cell-width" default:"2" help:"cell 后端的单元格宽度（mm）"`
	CellLine  float64 `name:"cell-line" default:"4.5" help:"cell 后端的行高（mm）"`
}

// RenderCmd 生成 PDF。
type RenderCmd struct {
	SourceFlags `embed:""`
	Out         string `name:"out" default:"output/out.pdf" help:"PDF 输出路径"`
	Debug       string `name:"debug" help:"布局调试 JSON 输出路径"`
	Points      bool   `name:"points" help:"在调试 JSON 中输出选区轮廓顶点"`
}

// InspectCmd 打印排版摘要。
type InspectCmd struct {
	SourceFlags `embed:""`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("galley"),
		kong.Description("Galley - 文本排版与选区几何"),
		kong.UsageOnError(),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}

// Run 串联解析、组版与渲染。
func (c *RenderCmd) Run(ctx *kong.Context) error {
	r := canvasrenderer.NewRenderer(filepath.Dir(c.In))
	result, err := c.build(r, compose.DebugOptions{Points: c.Points})
	if err != nil {
		return err
	}
	if c.Debug != "" {
		if err := writeDebug(result, c.Debug); err != nil {
			return err
		}
	}
	if err := render(result, r, c.Out); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout, "已生成 PDF：%s\n", c.Out)
	return nil
}

// Run 打印每行 fragment 的区间与矩形。
func (c *InspectCmd) Run(ctx *kong.Context) error {
	result, err := c.build(canvasrenderer.NewRenderer(filepath.Dir(c.In)), compose.DebugOptions{})
	if err != nil {
		return err
	}
	inspect(ctx.Stdout, result)
	return nil
}

// build 解析输入并组版。backend 为 canvas 时使用 r 测量文本。
func (s *SourceFlags) build(r *canvasrenderer.Renderer, debug compose.DebugOptions) (*compose.Result, error) {
	var data any
	if s.Data != "" {
		if err := json.Unmarshal([]byte(s.Data), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	file, err := os.Open(s.In)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DSL 文件 %s: %w", s.In, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}

	var shaper layout.Shaper = r
	if s.Backend == "cell" {
		shaper = cell.New(s.CellWidth, s.CellLine)
	}
	result, err := compose.Build(doc, data, compose.BuildOptions{Shaper: shaper, Debug: debug})
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	return result, nil
}

func render(result *compose.Result, r renderer.Renderer, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(result *compose.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := compose.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func inspect(w io.Writer, result *compose.Result) {
	fmt.Fprintf(w, "view %.2fx%.2fmm, %d lines\n", result.View.Width, result.View.Height, len(result.Lines))
	for _, line := range result.Lines {
		fmt.Fprintf(w, "line %d [%d,%d) y=%.2f h=%.2f\n", line.Index, line.Range.Start, line.Range.End, line.Y, line.Height)
		for i, f := range line.Fragments {
			fmt.Fprintf(w, "  fragment %d [%d,%d) x=%.2f y=%.2f w=%.2f h=%.2f\n",
				i, f.Range.Start, f.Range.End, f.Rect.X, f.Rect.Y, f.Rect.Width, f.Rect.Height)
		}
	}
	for _, sel := range result.Selections {
		fmt.Fprintf(w, "selection [%d,%d): %d rects, %d path elements\n",
			sel.Range.Start, sel.Range.End, len(sel.FillRects), len(sel.Outline.Elements))
		for _, r := range sel.FillRects {
			fmt.Fprintf(w, "  rect x=%.2f y=%.2f w=%.2f h=%.2f\n", r.X, r.Y, r.Width, r.Height)
		}
	}
}
