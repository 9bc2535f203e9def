package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureFunc 返回一段文本的像素宽度
type MeasureFunc func(s string) float64

// FaceMeasure 返回使用指定字体测量宽度的 MeasureFunc
func FaceMeasure(face text.Face) MeasureFunc {
	return func(s string) float64 {
		if s == "" || face == nil {
			return 0
		}
		w, _ := text.Measure(s, face, 0)
		return w
	}
}

// WrapText 将文本按指定宽度自动换行
//
// 参数:
//   - s: 要换行的文本，"\n" 强制换行
//   - face: 字体
//   - maxWidth: 最大宽度（像素）
func WrapText(s string, face text.Face, maxWidth float64) []string {
	return WrapWords(s, maxWidth, FaceMeasure(face))
}

// WrapWords 按单词换行
//
// 换行规则:
//   - 在空白处断行，行首行尾不保留空格
//   - 单个单词超过最大宽度时按字符强制断行
//   - maxWidth <= 0 或 measure 为 nil 时不换行
func WrapWords(s string, maxWidth float64, measure MeasureFunc) []string {
	if maxWidth <= 0 || measure == nil {
		return strings.Split(s, "\n")
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, w := range words {
			candidate := w
			if line != "" {
				candidate = line + " " + w
			}
			if measure(candidate) <= maxWidth {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			if measure(w) <= maxWidth {
				line = w
				continue
			}
			// 超长单词按字符拆分
			pieces := breakWord(w, maxWidth, measure)
			lines = append(lines, pieces[:len(pieces)-1]...)
			line = pieces[len(pieces)-1]
		}
		lines = append(lines, line)
	}
	return lines
}

// breakWord 把超宽单词拆成若干不超宽的片段（每段至少一个字符）
func breakWord(w string, maxWidth float64, measure MeasureFunc) []string {
	var pieces []string
	cur := ""
	for _, r := range w {
		next := cur + string(r)
		if cur != "" && measure(next) > maxWidth {
			pieces = append(pieces, cur)
			cur = string(r)
			continue
		}
		cur = next
	}
	return append(pieces, cur)
}
