package particle

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	w, h    float64
	clears  int
	circles []recordedCircle
	lines   []recordedLine
}

type recordedCircle struct {
	x, y, r float64
	c       color.Color
}

type recordedLine struct {
	x1, y1, x2, y2, width float64
	c                     color.Color
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
}
func (s *recordingSurface) DrawCircle(x, y, r float64, c color.Color) {
	s.circles = append(s.circles, recordedCircle{x, y, r, c})
}
func (s *recordingSurface) DrawLine(x1, y1, x2, y2, w float64, c color.Color) {
	s.lines = append(s.lines, recordedLine{x1, y1, x2, y2, w, c})
}

func newTestField(opts Options) *Field {
	return NewField(opts, rand.New(rand.NewSource(42)))
}

func TestInitialize_PopulatesWithinRanges(t *testing.T) {
	f := newTestField(Options{Count: 200})
	f.Initialize(800, 600, LightPalette)

	require.True(t, f.Ready())
	particles := f.Particles()
	require.Len(t, particles, 200)

	allowed := LightPalette.Colors()
	for i, p := range particles {
		assert.GreaterOrEqual(t, p.X, 0.0, "particle %d x", i)
		assert.Less(t, p.X, 800.0, "particle %d x", i)
		assert.GreaterOrEqual(t, p.Y, 0.0, "particle %d y", i)
		assert.Less(t, p.Y, 600.0, "particle %d y", i)
		assert.Equal(t, p.X, p.OriginX)
		assert.Equal(t, p.Y, p.OriginY)
		assert.LessOrEqual(t, math.Abs(p.VX), MaxInitialSpeed)
		assert.LessOrEqual(t, math.Abs(p.VY), MaxInitialSpeed)
		assert.GreaterOrEqual(t, p.Radius, MinRadius)
		assert.Less(t, p.Radius, MaxRadius)
		assert.GreaterOrEqual(t, p.Alpha, MinAlpha)
		assert.Less(t, p.Alpha, MaxAlpha)
		assert.Contains(t, allowed[:], p.Color)
	}
}

func TestInitialize_OpacityScalesAlpha(t *testing.T) {
	f := newTestField(Options{Count: 50, Opacity: 0.5})
	f.Initialize(100, 100, DarkPalette)

	for _, p := range f.Particles() {
		assert.GreaterOrEqual(t, p.Alpha, MinAlpha*0.5)
		assert.Less(t, p.Alpha, MaxAlpha*0.5)
	}
}

func TestInitialize_ZeroAreaIsNoop(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 300},
		{"zero height", 300, 0},
		{"both zero", 0, 0},
		{"negative", -10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(DefaultOptions())
			f.Initialize(tt.w, tt.h, LightPalette)
			assert.False(t, f.Ready())
			assert.Empty(t, f.Particles())

			// ticking and drawing an empty field must not panic
			f.Tick(Pointer{X: 1, Y: 1, Over: true})
			s := &recordingSurface{}
			f.Draw(s, Pointer{})
			assert.Equal(t, 1, s.clears)
			assert.Empty(t, s.circles)
		})
	}
}

func TestInitialize_RetriedAfterSizeKnown(t *testing.T) {
	f := newTestField(DefaultOptions())
	f.Initialize(0, 0, LightPalette)
	require.False(t, f.Ready())

	f.Resize(640, 480)
	assert.True(t, f.Ready())
	assert.Len(t, f.Particles(), DefaultOptions().Count)
}

func TestTick_StaysInsideBounds(t *testing.T) {
	f := newTestField(Options{Count: 80})
	f.Initialize(300, 200, LightPalette)

	// arbitrary, large initial velocities
	for i := range f.particles {
		f.particles[i].VX = float64(i%7-3) * 25
		f.particles[i].VY = float64(i%5-2) * 40
	}

	pointer := Pointer{X: 150, Y: 100, Over: true}
	for tick := 0; tick < 500; tick++ {
		f.Tick(pointer)
		for i, p := range f.particles {
			require.GreaterOrEqual(t, p.X, 0.0, "tick %d particle %d", tick, i)
			require.LessOrEqual(t, p.X, 300.0, "tick %d particle %d", tick, i)
			require.GreaterOrEqual(t, p.Y, 0.0, "tick %d particle %d", tick, i)
			require.LessOrEqual(t, p.Y, 200.0, "tick %d particle %d", tick, i)
		}
	}
}

func TestTick_ReflectsAndClamps(t *testing.T) {
	f := newTestField(Options{Count: 1})
	f.Initialize(100, 100, LightPalette)
	f.particles[0] = Particle{X: 99.5, Y: 0.2, OriginX: 99.5, OriginY: 0.2, VX: 2, VY: -1}

	f.Tick(Pointer{})

	p := f.particles[0]
	assert.Equal(t, 100.0, p.X)
	assert.Equal(t, 0.0, p.Y)
	// velocity inverted, then damped, then pulled by the spring
	assert.InDelta(t, -2*Damping+(99.5-100)*SpringStiffness, p.VX, 1e-12)
	assert.InDelta(t, 1*Damping+(0.2-0)*SpringStiffness, p.VY, 1e-12)
}

func TestTick_PointerRepulsion(t *testing.T) {
	f := newTestField(Options{Count: 1, MouseRadius: 100})
	f.Initialize(400, 400, LightPalette)
	f.particles[0] = Particle{X: 200, Y: 200, OriginX: 200, OriginY: 200}

	// pointer 50px to the left: force (100-50)/100 = 0.5, pushes to +x
	f.Tick(Pointer{X: 150, Y: 200, Over: true})

	p := f.particles[0]
	assert.InDelta(t, 0.5*RepulsionStrength*Damping, p.VX, 1e-12)
	assert.InDelta(t, 0, p.VY, 1e-12)
}

func TestTick_NoRepulsionWhenPointerAway(t *testing.T) {
	tests := []struct {
		name    string
		pointer Pointer
	}{
		{"not over", Pointer{X: 201, Y: 200, Over: false}},
		{"outside radius", Pointer{X: 400, Y: 200, Over: true}},
		{"exactly on particle", Pointer{X: 200, Y: 200, Over: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(Options{Count: 1, MouseRadius: 100})
			f.Initialize(400, 400, LightPalette)
			f.particles[0] = Particle{X: 200, Y: 200, OriginX: 200, OriginY: 200}

			f.Tick(tt.pointer)

			p := f.particles[0]
			assert.False(t, math.IsNaN(p.VX) || math.IsNaN(p.VY))
			assert.Zero(t, p.VX)
			assert.Zero(t, p.VY)
		})
	}
}

func TestTick_ConvergesTowardOrigin(t *testing.T) {
	f := newTestField(Options{Count: 30})
	f.Initialize(1000, 1000, LightPalette)

	// displace everything toward the middle so the walls never interfere
	for i := range f.particles {
		p := &f.particles[i]
		p.OriginX, p.OriginY = 500, 500
		p.X, p.Y = 500+float64(i%10), 500-float64(i%6)
		p.VX, p.VY = 0.2, -0.1
	}

	distance := func() []float64 {
		out := make([]float64, len(f.particles))
		for i, p := range f.particles {
			out[i] = math.Hypot(p.X-p.OriginX, p.Y-p.OriginY)
		}
		return out
	}

	start := distance()
	for i := 0; i < 3000; i++ {
		f.Tick(Pointer{})
	}
	end := distance()
	for i := range end {
		assert.Less(t, end[i], start[i]*0.05+0.01, "particle %d did not settle", i)
	}
}

func TestResize_RegeneratesParticles(t *testing.T) {
	f := newTestField(Options{Count: 40})
	f.Initialize(200, 200, LightPalette)
	before := f.Particles()

	f.Resize(200, 200)
	assert.Equal(t, before, f.Particles(), "same size must not regenerate")

	f.Resize(1000, 50)
	after := f.Particles()
	require.Len(t, after, 40)
	w, h := f.Size()
	assert.Equal(t, 1000.0, w)
	assert.Equal(t, 50.0, h)
	for _, p := range after {
		assert.Less(t, p.Y, 50.0)
		assert.Equal(t, p.X, p.OriginX)
	}
	assert.NotEqual(t, before, after)

	f.Resize(0, 50)
	assert.False(t, f.Ready())
}

func TestSetPalette_RecolorsWithoutMoving(t *testing.T) {
	f := newTestField(Options{Count: 60})
	f.Initialize(300, 300, LightPalette)
	f.Tick(Pointer{})
	before := f.Particles()

	f.SetPalette(DarkPalette)

	after := f.Particles()
	require.Len(t, after, len(before))
	dark := DarkPalette.Colors()
	for i := range after {
		assert.Equal(t, before[i].X, after[i].X)
		assert.Equal(t, before[i].Y, after[i].Y)
		assert.Equal(t, before[i].VX, after[i].VX)
		assert.Equal(t, before[i].VY, after[i].VY)
		assert.Contains(t, dark[:], after[i].Color)
	}
	assert.Equal(t, DarkPalette, f.Palette())
}

func TestEdgeOpacity(t *testing.T) {
	tests := []struct {
		name    string
		d       float64
		want    float64
		wantOK  bool
		maxDist float64
	}{
		{"touching", 0, 0.3, true, 100},
		{"half way", 50, 0.15, true, 100},
		{"near threshold", 99, 0.003, true, 100},
		{"at threshold", 100, 0, false, 100},
		{"beyond", 150, 0, false, 100},
		{"degenerate limit", 0, 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EdgeOpacity(tt.d, tt.maxDist)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	got, ok := PointerEdgeOpacity(30, 120)
	assert.True(t, ok)
	assert.InDelta(t, (1-30.0/120)*0.5, got, 1e-9)
}

func TestDraw_EdgesAndPointer(t *testing.T) {
	f := newTestField(Options{Count: 3, ConnectionDistance: 100, MouseRadius: 50})
	f.Initialize(500, 500, LightPalette)
	f.particles[0] = Particle{X: 100, Y: 100, Radius: 2, Alpha: 0.5, Color: LightPalette.Primary}
	f.particles[1] = Particle{X: 150, Y: 100, Radius: 2, Alpha: 0.5, Color: LightPalette.Primary}
	f.particles[2] = Particle{X: 400, Y: 400, Radius: 2, Alpha: 0.5, Color: LightPalette.Primary}

	s := &recordingSurface{w: 500, h: 500}
	f.Draw(s, Pointer{})

	require.Len(t, s.lines, 1, "only the close pair is connected")
	require.Len(t, s.circles, 3)
	edge := s.lines[0]
	assert.Equal(t, EdgeWidth, edge.width)
	c := edge.c.(color.NRGBA)
	assert.Equal(t, uint8(math.Round(255*0.15)), c.A)
	assert.Equal(t, LightPalette.Line.R, c.R)

	circle := s.circles[0].c.(color.NRGBA)
	assert.Equal(t, uint8(math.Round(float64(LightPalette.Primary.A)*0.5)), circle.A)

	// pointer near the third particle adds exactly one pointer edge
	f.Draw(s, Pointer{X: 410, Y: 400, Over: true})
	require.Len(t, s.lines, 2)
	pointerEdge := s.lines[1]
	assert.Equal(t, PointerEdgeWidth, pointerEdge.width)
	assert.Equal(t, 410.0, pointerEdge.x2)
	pc := pointerEdge.c.(color.NRGBA)
	assert.Equal(t, uint8(math.Round(255*(1-10.0/50)*0.5)), pc.A)
}

func TestDraw_NilSurface(t *testing.T) {
	f := newTestField(DefaultOptions())
	f.Initialize(100, 100, LightPalette)
	assert.NotPanics(t, func() { f.Draw(nil, Pointer{}) })
}

func TestNewField_AppliesDefaults(t *testing.T) {
	f := NewField(Options{Count: 10}, nil)
	opts := f.Options()
	assert.Equal(t, 10, opts.Count)
	assert.Equal(t, 100.0, opts.ConnectionDistance)
	assert.Equal(t, 120.0, opts.MouseRadius)
	assert.Equal(t, 1.0, opts.Opacity)
}
