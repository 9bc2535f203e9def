package scenes

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/portfolio/pkg/utils"
)

// Measurer 返回指定字号/字重的文本宽度测量函数
// 布局只依赖 Measurer，测试中可以替换为等宽测量
type Measurer func(size float64, bold bool) utils.MeasureFunc

type faceKey struct {
	size float64
	bold bool
}

// fontSet Go 字体族（常规 + 粗体），按字号缓存 Face
type fontSet struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
}

func loadFonts() (*fontSet, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	return &fontSet{regular: regular, bold: bold, faces: map[faceKey]*text.GoTextFace{}}, nil
}

func (f *fontSet) face(size float64, bold bool) *text.GoTextFace {
	key := faceKey{size, bold}
	if face, ok := f.faces[key]; ok {
		return face
	}
	src := f.regular
	if bold {
		src = f.bold
	}
	face := &text.GoTextFace{Source: src, Size: size}
	f.faces[key] = face
	return face
}

func (f *fontSet) measurer() Measurer {
	return func(size float64, bold bool) utils.MeasureFunc {
		return utils.FaceMeasure(f.face(size, bold))
	}
}
