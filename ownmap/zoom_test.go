package ownmap

import (
	"math"
	"testing"

	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
)

func TestWebMercatorView_ZoomForResolution(t *testing.T) {
	view := NewWebMercatorView(256)

	assert.InDelta(t, 156543.03392804097, view.MaxResolution(), 1e-6)
	assert.InDelta(t, 0, view.ZoomForResolution(view.MaxResolution()), 1e-9)
	assert.InDelta(t, 10, view.ZoomForResolution(view.ResolutionForZoom(10)), 1e-9)

	// coarser than zoom 0 is clamped
	assert.Equal(t, 0.0, view.ZoomForResolution(view.MaxResolution()*4))
	assert.Equal(t, float64(MaxZoomLevel), view.ZoomForResolution(0))
	assert.Equal(t, float64(MaxZoomLevel), view.ZoomForResolution(-1))
	assert.Equal(t, float64(MaxZoomLevel), view.ZoomForResolution(math.NaN()))
}

func TestWebMercatorView_ZoomForResolution_monotonic(t *testing.T) {
	view := NewWebMercatorView(256)

	previousZoom := math.Inf(1)
	for resolution := 0.01; resolution < 400000; resolution *= 1.7 {
		zoom := view.ZoomForResolution(resolution)
		assert.LessOrEqual(t, zoom, previousZoom, "resolution %f", resolution)
		previousZoom = zoom
	}
}

func TestWebMercatorView_ResolutionForTile(t *testing.T) {
	view := NewWebMercatorView(256)
	tile := maptile.New(3, 4, 5)

	assert.InDelta(t, view.MaxResolution()/32, view.ResolutionForTile(tile), 1e-9)
}
