package particle

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// CellScreen is the part of tcell.Screen a TerminalSurface draws on.
type CellScreen interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
}

// Terminal raster settings (终端渲染参数)
const (
	// DefaultCellWidth and DefaultCellHeight are the pixels covered by one cell.
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0

	// minCellAlpha is the coverage below which a cell is left blank.
	minCellAlpha = 0.04
)

// lineRunes shade an edge by opacity, weakest first.
var lineRunes = []rune{'·', '∙', '•'}

// TerminalSurface rasterizes particles and edges into terminal cells.
// Terminals have no alpha, so colors are blended over the background.
type TerminalSurface struct {
	screen     CellScreen
	cellWidth  float64
	cellHeight float64
	background colorful.Color
}

// NewTerminalSurface wraps a screen. bg is the color blended against.
func NewTerminalSurface(screen CellScreen, bg color.Color) *TerminalSurface {
	c, ok := colorful.MakeColor(bg)
	if !ok {
		c = colorful.Color{}
	}
	return &TerminalSurface{
		screen:     screen,
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
		background: c,
	}
}

// SetBackground changes the blend color, e.g. on a theme switch.
func (s *TerminalSurface) SetBackground(bg color.Color) {
	if c, ok := colorful.MakeColor(bg); ok {
		s.background = c
	}
}

// Size implements Surface; the terminal grid is reported in virtual pixels.
func (s *TerminalSurface) Size() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) * s.cellWidth, float64(rows) * s.cellHeight
}

// Clear implements Surface.
func (s *TerminalSurface) Clear() {
	s.screen.Clear()
}

// DrawCircle implements Surface. A particle occupies the cell under its center.
func (s *TerminalSurface) DrawCircle(cx, cy, radius float64, clr color.Color) {
	r := '•'
	if radius >= (MinRadius+MaxRadius)/2 {
		r = '●'
	}
	col, row := s.cell(cx, cy)
	s.put(col, row, r, clr)
}

// DrawLine implements Surface using Bresenham over the cell grid.
func (s *TerminalSurface) DrawLine(x1, y1, x2, y2, width float64, clr color.Color) {
	_, _, _, a := clr.RGBA()
	alpha := float64(a) / 0xffff
	if alpha < minCellAlpha {
		return
	}
	idx := int(alpha / PointerEdgeOpacityScale * float64(len(lineRunes)))
	if idx >= len(lineRunes) {
		idx = len(lineRunes) - 1
	}
	r := lineRunes[idx]

	c0, r0 := s.cell(x1, y1)
	c1, r1 := s.cell(x2, y2)
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr
	for {
		s.put(c0, r0, r, clr)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func (s *TerminalSurface) cell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellWidth)), int(math.Floor(y / s.cellHeight))
}

func (s *TerminalSurface) put(col, row int, r rune, clr color.Color) {
	cols, rows := s.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	s.screen.SetContent(col, row, r, nil, tcell.StyleDefault.Foreground(s.blend(clr)))
}

// blend composites a translucent color over the background.
func (s *TerminalSurface) blend(clr color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	fg := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	out := s.background.BlendRgb(fg, float64(n.A)/255).Clamped()
	r, g, b := out.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
