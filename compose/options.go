package compose

import "github.com/ByLCY/galley/layout"

// BuildOptions 控制组版过程。
type BuildOptions struct {
	Shaper layout.Shaper
	Debug  DebugOptions
}

// DebugOptions 控制调试输出中的附加字段。
type DebugOptions struct {
	// Points 为每个选区输出轮廓多边形的顶点。
	Points bool
}
