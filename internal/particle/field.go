package particle

import (
	"image/color"
	"math"
	"math/rand"
)

// Field is the particle simulation for one drawing surface.
//
// A Field is not safe for concurrent use; it is ticked and drawn from the
// game loop, and every mutation (pointer, palette, resize) happens there too.
type Field struct {
	opts      Options
	rng       *rand.Rand
	particles []Particle
	width     float64
	height    float64
	palette   Palette
}

// NewField creates an empty field. Call Initialize once the surface has a size.
// rng may be nil, in which case a time-independent default source is used.
func NewField(opts Options, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Field{
		opts:    opts.withDefaults(),
		rng:     rng,
		palette: LightPalette,
	}
}

// Options returns the effective options (defaults applied).
func (f *Field) Options() Options {
	return f.opts
}

// Initialize populates the field for a surface of the given size.
//
// A zero-area surface (not laid out yet) leaves the field empty; the caller
// re-invokes Initialize, or Resize, once a real size is known.
func (f *Field) Initialize(width, height float64, palette Palette) {
	f.palette = palette
	f.width, f.height = width, height
	f.particles = f.particles[:0]

	if width <= 0 || height <= 0 {
		return
	}

	colors := palette.Colors()
	for i := 0; i < f.opts.Count; i++ {
		x := f.rng.Float64() * width
		y := f.rng.Float64() * height
		f.particles = append(f.particles, Particle{
			X:       x,
			Y:       y,
			OriginX: x,
			OriginY: y,
			VX:      (f.rng.Float64() - 0.5) * 2 * MaxInitialSpeed,
			VY:      (f.rng.Float64() - 0.5) * 2 * MaxInitialSpeed,
			Radius:  MinRadius + f.rng.Float64()*(MaxRadius-MinRadius),
			Alpha:   (MinAlpha + f.rng.Float64()*(MaxAlpha-MinAlpha)) * f.opts.Opacity,
			Color:   colors[f.rng.Intn(len(colors))],
		})
	}
}

// Resize regenerates every particle against the new surface size.
// Existing motion is discarded rather than rescaled.
func (f *Field) Resize(width, height float64) {
	if width == f.width && height == f.height && f.Ready() {
		return
	}
	f.Initialize(width, height, f.palette)
}

// SetPalette recolors the existing particles by re-sampling from p.
// Positions and velocities are kept so motion stays continuous.
func (f *Field) SetPalette(p Palette) {
	f.palette = p
	colors := p.Colors()
	for i := range f.particles {
		f.particles[i].Color = colors[f.rng.Intn(len(colors))]
	}
}

// Palette returns the active palette.
func (f *Field) Palette() Palette {
	return f.palette
}

// Ready reports whether the field holds particles for a non-empty surface.
func (f *Field) Ready() bool {
	return f.width > 0 && f.height > 0 && len(f.particles) > 0
}

// Size returns the surface size the particles were generated for.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Particles returns a copy of the current particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Tick advances the simulation by one step.
//
// Per particle: integrate, reflect off the edges (clamping back inside),
// repel from the pointer, damp, then spring toward the origin.
func (f *Field) Tick(p Pointer) {
	if !f.Ready() {
		return
	}

	radius := f.opts.MouseRadius
	for i := range f.particles {
		pt := &f.particles[i]

		pt.X += pt.VX
		pt.Y += pt.VY

		if pt.X < 0 || pt.X > f.width {
			pt.VX = -pt.VX
			pt.X = clamp(pt.X, 0, f.width)
		}
		if pt.Y < 0 || pt.Y > f.height {
			pt.VY = -pt.VY
			pt.Y = clamp(pt.Y, 0, f.height)
		}

		if p.Over {
			dx := p.X - pt.X
			dy := p.Y - pt.Y
			dist := math.Hypot(dx, dy)
			// dist == 0 has no direction; the particle is left alone this tick
			if dist > 0 && dist < radius {
				force := (radius - dist) / radius
				pt.VX -= dx / dist * force * RepulsionStrength
				pt.VY -= dy / dist * force * RepulsionStrength
			}
		}

		pt.VX *= Damping
		pt.VY *= Damping

		pt.VX += (pt.OriginX - pt.X) * SpringStiffness
		pt.VY += (pt.OriginY - pt.Y) * SpringStiffness
	}
}

// Draw renders the field onto s: edges between close particles, the
// particles themselves, and edges to the pointer while it is over the surface.
func (f *Field) Draw(s Surface, p Pointer) {
	if s == nil {
		return
	}
	s.Clear()
	if !f.Ready() {
		return
	}

	maxDist := f.opts.ConnectionDistance
	for i := 0; i < len(f.particles); i++ {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			opacity, ok := EdgeOpacity(dist, maxDist)
			if !ok {
				continue
			}
			s.DrawLine(a.X, a.Y, b.X, b.Y, EdgeWidth, scaleAlpha(f.palette.Line, opacity*f.opts.Opacity))
		}
	}

	for i := range f.particles {
		pt := &f.particles[i]
		s.DrawCircle(pt.X, pt.Y, pt.Radius, scaleAlpha(pt.Color, pt.Alpha))
	}

	if !p.Over {
		return
	}
	for i := range f.particles {
		pt := &f.particles[i]
		dist := math.Hypot(p.X-pt.X, p.Y-pt.Y)
		opacity, ok := PointerEdgeOpacity(dist, f.opts.MouseRadius)
		if !ok {
			continue
		}
		s.DrawLine(pt.X, pt.Y, p.X, p.Y, PointerEdgeWidth, scaleAlpha(f.palette.Line, opacity*f.opts.Opacity))
	}
}

// EdgeOpacity returns the opacity of an edge between two particles at
// distance d, with linear falloff to zero at maxDist. ok is false when no
// edge is drawn (d >= maxDist).
func EdgeOpacity(d, maxDist float64) (opacity float64, ok bool) {
	return falloff(d, maxDist, EdgeOpacityScale)
}

// PointerEdgeOpacity is EdgeOpacity for particle-to-pointer edges.
func PointerEdgeOpacity(d, radius float64) (opacity float64, ok bool) {
	return falloff(d, radius, PointerEdgeOpacityScale)
}

func falloff(d, limit, scale float64) (float64, bool) {
	if limit <= 0 || d >= limit {
		return 0, false
	}
	return (1 - d/limit) * scale, true
}

// scaleAlpha multiplies the color's alpha by a in [0,1].
func scaleAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp(a, 0, 1)))
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
