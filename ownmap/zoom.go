package ownmap

import (
	"math"

	"github.com/paulmach/orb/maptile"
)

const (
	earthRadiusMetres = 6378137.0
	defaultTileSize   = 256
)

// View converts a map resolution (map units per pixel) into a (fractional) zoom level.
type View interface {
	ZoomForResolution(resolution float64) float64
}

// WebMercatorView is the default view for EPSG:3857 maps made of square tiles.
type WebMercatorView struct {
	TileSize int
	MinZoom  ZoomLevel
	MaxZoom  ZoomLevel
}

var DefaultView = NewWebMercatorView(defaultTileSize)

func NewWebMercatorView(tileSize int) *WebMercatorView {
	return &WebMercatorView{
		TileSize: tileSize,
		MinZoom:  MinZoomLevel,
		MaxZoom:  MaxZoomLevel,
	}
}

// MaxResolution is the resolution at zoom 0
func (v *WebMercatorView) MaxResolution() float64 {
	return 2 * math.Pi * earthRadiusMetres / float64(v.TileSize)
}

// ZoomForResolution is clamped to [MinZoom, MaxZoom]. Non-positive resolutions give MaxZoom.
func (v *WebMercatorView) ZoomForResolution(resolution float64) float64 {
	if !(resolution > 0) {
		return float64(v.MaxZoom)
	}

	zoom := math.Log2(v.MaxResolution() / resolution)
	if zoom < float64(v.MinZoom) {
		return float64(v.MinZoom)
	}
	if zoom > float64(v.MaxZoom) {
		return float64(v.MaxZoom)
	}
	return zoom
}

func (v *WebMercatorView) ResolutionForZoom(zoom ZoomLevel) float64 {
	return v.MaxResolution() / math.Exp2(float64(zoom))
}

// ResolutionForTile gives the resolution at which a map tile is drawn at its native size
func (v *WebMercatorView) ResolutionForTile(tile maptile.Tile) float64 {
	return v.ResolutionForZoom(ZoomLevel(tile.Z))
}
