package layout

import (
	"strings"

	"github.com/rivo/uniseg"
)

// ClusterLen 返回 text 开头第一个字素簇的字节长度，它是不可再分的最小断行单位。
func ClusterLen(text string) int {
	if text == "" {
		return 0
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	return len(cluster)
}

// SuggestGreedyBreak 是各整形后端共用的贪心断点查找。
// width 返回一段文本的宽度；除 word-only 策略外，返回值至少为一个字素簇（除非 text 为空）。
//
// word 策略取落在 UAX#14 断点上、可见宽度不超过 budget 的最长前缀，断点前的空白悬挂在行尾、
// 不计入宽度；一个词都放不下时退化为按字素簇切分。word-only 策略不做退化，放不下时返回 0。
// char 策略只按字素簇切分，clip 取整段。
func SuggestGreedyBreak(text string, strategy LineBreakStrategy, budget float64, width func(string) float64) int {
	if text == "" {
		return 0
	}
	switch strategy {
	case BreakClip:
		return len(text)
	case BreakWordOnly:
		return longestFit(text, budget, width, lineSegments, true)
	case BreakWord:
		if n := longestFit(text, budget, width, lineSegments, true); n > 0 {
			return n
		}
	}
	if n := longestFit(text, budget, width, graphemeSegments, false); n > 0 {
		return n
	}
	return ClusterLen(text)
}

type segmentFunc func(rest string, state int) (seg, tail string, mustBreak bool, newState int)

func lineSegments(rest string, state int) (string, string, bool, int) {
	return uniseg.FirstLineSegmentInString(rest, state)
}

func graphemeSegments(rest string, state int) (string, string, bool, int) {
	cluster, tail, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
	return cluster, tail, false, newState
}

// longestFit 返回宽度不超过 budget 的最长分段前缀。hang 为 true 时行尾空白不计宽度。
func longestFit(text string, budget float64, width func(string) float64, next segmentFunc, hang bool) int {
	best, pos := 0, 0
	rest, state := text, -1
	for rest != "" {
		seg, tail, mustBreak, newState := next(rest, state)
		if seg == "" {
			break
		}
		pos += len(seg)
		prefix := text[:pos]
		if hang {
			prefix = HangingTrim(prefix)
		}
		if width(prefix) > budget {
			break
		}
		best = pos
		if mustBreak {
			break
		}
		rest, state = tail, newState
	}
	return best
}

// HangingTrim 去掉可悬挂在行尾的空白与换行符，剩下的是行尾的可见部分。
func HangingTrim(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}

// TrimLineEnd 去掉行尾的换行符；换行符不占宽度。
func TrimLineEnd(s string) string {
	return strings.TrimRight(s, "\r\n")
}
