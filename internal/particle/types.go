// Package particle implements the interactive particle network drawn behind
// the portfolio sections.
//
// A Field owns a fixed-size batch of particles that drift, bounce off the
// surface edges, flee from the pointer and spring back toward the point
// where they were spawned. Rendering is delegated to a Surface so the same
// simulation can be drawn into an ebiten image or a terminal.
package particle

import "image/color"

// Simulation constants (物理参数)
const (
	// MaxInitialSpeed bounds the spawn velocity on each axis.
	MaxInitialSpeed = 0.25
	// MinRadius and MaxRadius bound the particle radius, [MinRadius, MaxRadius).
	MinRadius = 1.0
	MaxRadius = 4.0
	// MinAlpha and MaxAlpha bound the particle opacity, [MinAlpha, MaxAlpha).
	MinAlpha = 0.3
	MaxAlpha = 0.8

	// RepulsionStrength scales the pointer push added to velocity.
	RepulsionStrength = 0.5
	// Damping is applied to velocity once per tick.
	Damping = 0.98
	// SpringStiffness pulls particles back toward their origin.
	SpringStiffness = 0.002

	// EdgeOpacityScale is the opacity of a particle-particle edge at distance 0.
	EdgeOpacityScale = 0.3
	// PointerEdgeOpacityScale is the opacity of a particle-pointer edge at distance 0.
	PointerEdgeOpacityScale = 0.5

	// EdgeWidth and PointerEdgeWidth are the stroke widths in pixels.
	EdgeWidth        = 0.5
	PointerEdgeWidth = 1.0
)

// Particle is a single simulated point.
// Colors are non-premultiplied so that the palette alpha can be scaled freely.
type Particle struct {
	X, Y             float64 // current position (surface pixels)
	OriginX, OriginY float64 // spawn position, anchor of the restoring spring
	VX, VY           float64 // velocity (pixels per tick)
	Radius           float64
	Alpha            float64
	Color            color.NRGBA
}

// Palette is the three-color set used for the particles of one theme,
// plus the opaque color used for edges.
type Palette struct {
	Primary   color.NRGBA
	Secondary color.NRGBA
	Tertiary  color.NRGBA
	Line      color.NRGBA
}

// Colors returns the sampleable particle colors in a fixed order.
func (p Palette) Colors() [3]color.NRGBA {
	return [3]color.NRGBA{p.Primary, p.Secondary, p.Tertiary}
}

// Pointer is the pointer state consumed by a tick.
// Coordinates are relative to the surface.
type Pointer struct {
	X, Y float64
	Over bool
}

// Options configures a Field. Zero fields fall back to DefaultOptions.
type Options struct {
	Count              int     `yaml:"count" mapstructure:"count"`
	ConnectionDistance float64 `yaml:"connectionDistance" mapstructure:"connectionDistance"`
	MouseRadius        float64 `yaml:"mouseRadius" mapstructure:"mouseRadius"`
	Opacity            float64 `yaml:"opacity" mapstructure:"opacity"`
}

// DefaultOptions matches the section background layer.
func DefaultOptions() Options {
	return Options{
		Count:              60,
		ConnectionDistance: 100,
		MouseRadius:        120,
		Opacity:            1,
	}
}

// HeroOptions is the denser preset used behind the hero section.
func HeroOptions() Options {
	return Options{
		Count:              80,
		ConnectionDistance: 120,
		MouseRadius:        150,
		Opacity:            1,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Count <= 0 {
		o.Count = d.Count
	}
	if o.ConnectionDistance <= 0 {
		o.ConnectionDistance = d.ConnectionDistance
	}
	if o.MouseRadius <= 0 {
		o.MouseRadius = d.MouseRadius
	}
	if o.Opacity <= 0 {
		o.Opacity = d.Opacity
	}
	return o
}

// LightPalette and DarkPalette are the built-in design-system palettes.
// pkg/config can override them from the site configuration.
var (
	LightPalette = Palette{
		Primary:   color.NRGBA{R: 99, G: 102, B: 241, A: 153},
		Secondary: color.NRGBA{R: 129, G: 140, B: 248, A: 102},
		Tertiary:  color.NRGBA{R: 165, G: 180, B: 252, A: 77},
		Line:      color.NRGBA{R: 99, G: 102, B: 241, A: 255},
	}
	DarkPalette = Palette{
		Primary:   color.NRGBA{R: 129, G: 140, B: 248, A: 153},
		Secondary: color.NRGBA{R: 99, G: 102, B: 241, A: 102},
		Tertiary:  color.NRGBA{R: 79, G: 70, B: 229, A: 77},
		Line:      color.NRGBA{R: 129, G: 140, B: 248, A: 255},
	}
)
