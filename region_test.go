package facextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// validRegion returns a region which passes every acceptance gate
// inside a 200x200 image.
func validRegion() Region {
	return Region{X: 10, Y: 10, W: 60, H: 60, Q: 5.0}
}

func TestFilter_ShouldAcceptValidRegion(t *testing.T) {
	got := FilterRegions([]Region{validRegion()}, 200, 200)
	assert.Len(t, got, 1)
}

func TestFilter_ShouldRejectRegionsBelowMinimumSize(t *testing.T) {
	assert := assert.New(t)

	regions := []Region{
		{X: 0, Y: 0, W: 39, H: 45, Q: 5.0},
		{X: 0, Y: 0, W: 45, H: 39, Q: 5.0},
		{X: 0, Y: 0, W: 39, H: 39, Q: 5.0},
		{X: 0, Y: 0, W: 40, H: 40, Q: 5.0},
	}
	got := FilterRegions(regions, 200, 200)

	for _, reg := range got {
		assert.GreaterOrEqual(reg.W, 40)
		assert.GreaterOrEqual(reg.H, 40)
	}
	assert.Len(got, 1)
}

func TestFilter_AreaRatioBoundsAreStrict(t *testing.T) {
	assert := assert.New(t)

	// 40x40 = 1600 px is exactly 2% of a 400x200 image.
	atLowerBound := Region{X: 0, Y: 0, W: 40, H: 40, Q: 5.0}
	assert.Empty(FilterRegions([]Region{atLowerBound}, 400, 200))

	// 100x100 = 10000 px is exactly 40% of a 250x100 image.
	atUpperBound := Region{X: 0, Y: 0, W: 100, H: 100, Q: 5.0}
	assert.Empty(FilterRegions([]Region{atUpperBound}, 250, 100))

	justInside := Region{X: 0, Y: 0, W: 41, H: 41, Q: 5.0}
	assert.Len(FilterRegions([]Region{justInside}, 400, 200), 1)
}

func TestFilter_AspectRatioBoundsAreStrict(t *testing.T) {
	assert := assert.New(t)

	tooTall := Region{X: 0, Y: 0, W: 40, H: 80, Q: 5.0} // exactly 0.5
	tooWide := Region{X: 0, Y: 0, W: 80, H: 40, Q: 5.0} // exactly 2.0
	fine := Region{X: 0, Y: 0, W: 60, H: 80, Q: 5.0}

	got := FilterRegions([]Region{tooTall, tooWide, fine}, 250, 250)
	assert.Len(got, 1)
	assert.Equal(fine, got[0])
}

func TestFilter_ConfidenceGateIsFixed(t *testing.T) {
	assert := assert.New(t)

	reg := validRegion()

	reg.Q = 1.9
	assert.Empty(FilterRegions([]Region{reg}, 200, 200))

	reg.Q = 2.0
	assert.Empty(FilterRegions([]Region{reg}, 200, 200))

	reg.Q = 2.01
	assert.Len(FilterRegions([]Region{reg}, 200, 200), 1)
}

func TestFilter_ShouldGuardAgainstMalformedInput(t *testing.T) {
	assert := assert.New(t)

	regions := []Region{
		{X: 0, Y: 0, W: 60, H: 0, Q: 5.0},
		{X: 0, Y: 0, W: 0, H: 60, Q: 5.0},
	}
	assert.NotPanics(func() {
		assert.Empty(FilterRegions(regions, 200, 200))
	})

	// Degenerate image dimensions must not divide by zero either.
	assert.NotPanics(func() {
		assert.Empty(FilterRegions([]Region{validRegion()}, 0, 0))
	})
}

func TestFilter_IsPureAndOrderPreserving(t *testing.T) {
	assert := assert.New(t)

	regions := []Region{
		{X: 10, Y: 10, W: 60, H: 60, Q: 5.0},
		{X: 0, Y: 0, W: 10, H: 10, Q: 5.0},
		{X: 90, Y: 90, W: 50, H: 70, Q: 3.0},
		{X: 50, Y: 50, W: 60, H: 60, Q: 1.0},
	}

	first := FilterRegions(regions, 200, 200)
	second := FilterRegions(regions, 200, 200)
	assert.Equal(first, second)

	// Running the filter over its own output must be the identity.
	assert.Equal(first, FilterRegions(first, 200, 200))

	assert.Len(first, 2)
	assert.Equal(regions[0], first[0])
	assert.Equal(regions[2], first[1])
}
