package compose

import (
	"strconv"
	"strings"
)

// Unit 记录 DSL 中长度值的原始单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位，例如倍数
	UnitMM
	UnitCM
	UnitIN
	UnitPT
	UnitFactor // 以 x 结尾的倍数，例如 1.2x
)

// pt 与 mm 的换算系数。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	case UnitFactor:
		return "x"
	default:
		return ""
	}
}

// Length 保留数值及其原始单位。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// MM 将长度换算为毫米。无单位的数字按毫米处理。
func (l Length) MM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// PT 将长度换算为 pt。
func (l Length) PT() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return l.MM() * MmToPt
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"x", UnitFactor}}

// ParseLength 解析带单位的 DSL 长度，例如 11pt、4mm、1.2x。
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// parseMM 是 ParseLength 的便捷形式，无法解析时返回 0。
func parseMM(value string) float64 {
	l, ok := ParseLength(value)
	if !ok || l.Unit == UnitFactor {
		return 0
	}
	return l.MM()
}

// LineHeightKind 区分倍数行高与绝对行高。
type LineHeightKind int

const (
	LineHeightFactor LineHeightKind = iota
	LineHeightAbsolute
)

// LineHeightSpec 保留作者写下的行高：倍数（1.2x 或 1.2）或绝对长度（18pt）。
type LineHeightSpec struct {
	Kind   LineHeightKind `json:"kind"`
	Factor float64        `json:"factor,omitempty"`
	Len    Length         `json:"len,omitempty"`
}

// ParseLineHeight 解析 line-height 取值。
func ParseLineHeight(value string) (LineHeightSpec, bool) {
	l, ok := ParseLength(value)
	if !ok || l.Value <= 0 {
		return LineHeightSpec{}, false
	}
	switch l.Unit {
	case UnitFactor, UnitNone:
		return LineHeightSpec{Kind: LineHeightFactor, Factor: l.Value}, true
	default:
		return LineHeightSpec{Kind: LineHeightAbsolute, Len: l}, true
	}
}
