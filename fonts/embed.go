package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未声明字体时使用的内置字体名。
const Default = "go-regular"

var builtin = map[string][]byte{
	"go-regular":     goregular.TTF,
	"go-bold":        gobold.TTF,
	"go-italic":      goitalic.TTF,
	"go-bold-italic": gobolditalic.TTF,
	"go-medium":      gomedium.TTF,
	"go-mono":        gomono.TTF,
	"go-mono-bold":   gomonobold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:go-mono"、"embed:go-mono" 或直接 "go-mono"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range []string{"builtin:", "built-in:", "embed:"} {
		key = strings.TrimPrefix(key, prefix)
	}
	key = strings.TrimSuffix(key, ".ttf")
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体", name)
	}
	return data, nil
}

// Names 返回全部内置字体名，按字母序排列。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
