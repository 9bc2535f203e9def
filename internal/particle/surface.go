package particle

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the drawing target of a Field.
// Coordinates and sizes are in surface pixels.
type Surface interface {
	Size() (width, height float64)
	Clear()
	DrawCircle(cx, cy, radius float64, clr color.Color)
	DrawLine(x1, y1, x2, y2, width float64, clr color.Color)
}

// ImageSurface draws into an offscreen ebiten image.
// The image is (re)allocated by SetSize; a zero size leaves no image and
// every draw call becomes a no-op.
type ImageSurface struct {
	img       *ebiten.Image
	antialias bool
}

// NewImageSurface creates a surface of the given pixel size.
func NewImageSurface(width, height int) *ImageSurface {
	s := &ImageSurface{antialias: true}
	s.SetSize(width, height)
	return s
}

// SetSize reallocates the backing image when the size changes.
func (s *ImageSurface) SetSize(width, height int) {
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		s.img.Deallocate()
		s.img = nil
	}
	if width <= 0 || height <= 0 {
		return
	}
	s.img = ebiten.NewImage(width, height)
}

// Image returns the backing image, or nil before a size is set.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// Size implements Surface.
func (s *ImageSurface) Size() (float64, float64) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Clear implements Surface.
func (s *ImageSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

// DrawCircle implements Surface.
func (s *ImageSurface) DrawCircle(cx, cy, radius float64, clr color.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(radius), clr, s.antialias)
}

// DrawLine implements Surface.
func (s *ImageSurface) DrawLine(x1, y1, x2, y2, width float64, clr color.Color) {
	if s.img == nil {
		return
	}
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), clr, s.antialias)
}

// Dispose releases the backing image.
func (s *ImageSurface) Dispose() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}
