package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnchors struct {
	origin, dest     Rect
	originOK, destOK bool
	calls            int
}

func (f *fakeAnchors) Measure() (Rect, bool, Rect, bool) {
	f.calls++
	return f.origin, f.originOK, f.dest, f.destOK
}

func TestInterpolate(t *testing.T) {
	origin := Rect{Top: 200, Left: 500, Size: 160}
	dest := Rect{Top: 10, Left: 20, Size: 40}

	assert.Equal(t, origin, Interpolate(origin, dest, 0))
	assert.Equal(t, dest, Interpolate(origin, dest, 1))
	assert.Equal(t, Rect{Top: 105, Left: 260, Size: 100}, Interpolate(origin, dest, 0.5))
}

func TestPositionInterpolator_NotReadyUntilMeasured(t *testing.T) {
	src := &fakeAnchors{}
	pi := NewPositionInterpolator(src, 2, nil)

	_, ok := pi.At(0.5, 0)
	assert.False(t, ok)

	// only the origin is known
	src.origin, src.originOK = Rect{Top: 100, Left: 100, Size: 160}, true
	pi.Remeasure(0)
	_, ok = pi.At(0.5, 0)
	assert.False(t, ok)

	src.dest, src.destOK = Rect{Top: 10, Left: 10, Size: 40}, true
	pi.Remeasure(0)
	r, ok := pi.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, Rect{Top: 100, Left: 100, Size: 160}, r)
}

func TestPositionInterpolator_OriginFollowsScroll(t *testing.T) {
	src := &fakeAnchors{
		origin: Rect{Top: 300, Left: 400, Size: 160}, originOK: true,
		dest: Rect{Top: 12, Left: 24, Size: 40}, destOK: true,
	}
	pi := NewPositionInterpolator(src, 1, nil)

	// measured while scrolled by 100: the origin is stored in document space
	pi.Remeasure(100)
	origin, dest, ok := pi.Anchors()
	require.True(t, ok)
	assert.Equal(t, 400.0, origin.Top)
	assert.Equal(t, 12.0, dest.Top)

	r, ok := pi.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, 400.0, r.Top)

	r, _ = pi.At(0, 250)
	assert.Equal(t, 150.0, r.Top)

	// at full progress the destination is fixed to the viewport
	r, _ = pi.At(1, 999)
	assert.Equal(t, Rect{Top: 12, Left: 24, Size: 40}, r)
}

func TestPositionInterpolator_ClampsProgress(t *testing.T) {
	src := &fakeAnchors{
		origin: Rect{Top: 100, Left: 100, Size: 160}, originOK: true,
		dest: Rect{Top: 10, Left: 10, Size: 40}, destOK: true,
	}
	pi := NewPositionInterpolator(src, 1, nil)
	pi.Remeasure(0)

	low, _ := pi.At(-3, 0)
	high, _ := pi.At(7, 0)
	assert.Equal(t, 160.0, low.Size)
	assert.Equal(t, 40.0, high.Size)
}

func TestPositionInterpolator_KeepsLastValidAnchor(t *testing.T) {
	src := &fakeAnchors{
		origin: Rect{Top: 100, Left: 100, Size: 160}, originOK: true,
		dest: Rect{Top: 10, Left: 10, Size: 40}, destOK: true,
	}
	pi := NewPositionInterpolator(src, 1, nil)
	pi.Remeasure(0)

	src.originOK = false
	src.dest = Rect{Top: math.NaN(), Left: 0, Size: 40}
	pi.Remeasure(0)

	origin, dest, ok := pi.Anchors()
	require.True(t, ok)
	assert.Equal(t, 100.0, origin.Top)
	assert.Equal(t, 10.0, dest.Top)

	src.originOK = true
	src.origin = Rect{Top: 50, Left: 50, Size: 0}
	pi.Remeasure(0)
	origin, _, _ = pi.Anchors()
	assert.Equal(t, 160.0, origin.Size, "zero-size anchor is ignored")
}

func TestPositionInterpolator_DebouncesRemeasure(t *testing.T) {
	src := &fakeAnchors{
		origin: Rect{Top: 100, Left: 100, Size: 160}, originOK: true,
		dest: Rect{Top: 10, Left: 10, Size: 40}, destOK: true,
	}
	pi := NewPositionInterpolator(src, 3, nil)

	pi.Update(0)
	assert.Equal(t, 0, src.calls, "nothing requested")

	pi.RequestRemeasure()
	pi.Update(0)
	pi.Update(0)
	// a burst of resizes restarts the countdown
	pi.RequestRemeasure()
	pi.Update(0)
	pi.Update(0)
	assert.Equal(t, 0, src.calls)
	assert.True(t, pi.Pending())

	pi.Update(0)
	assert.Equal(t, 1, src.calls)
	assert.False(t, pi.Pending())

	pi.Update(0)
	assert.Equal(t, 1, src.calls)
}

func TestPositionInterpolator_DefaultSettleTicks(t *testing.T) {
	src := &fakeAnchors{}
	pi := NewPositionInterpolator(src, 0, nil)
	pi.RequestRemeasure()
	for i := 0; i < DefaultSettleTicks-1; i++ {
		pi.Update(0)
	}
	assert.Equal(t, 0, src.calls)
	pi.Update(0)
	assert.Equal(t, 1, src.calls)
}
