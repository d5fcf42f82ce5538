package webservices

import (
	"context"
	"net/url"
	"strconv"

	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/jamesrr39/semaphore"
	"github.com/paulmach/orb/geojson"
)

type styledFeature struct {
	ID           interface{}                `json:"id,omitempty"`
	Feature      *geojson.Feature           `json:"feature,omitempty"`
	Instructions []*styling.DrawInstruction `json:"instructions"`
}

type styledFeaturesResponse struct {
	StyleID    string           `json:"styleId"`
	Resolution float64          `json:"resolution"`
	Background *styling.Color   `json:"background"`
	Features   []*styledFeature `json:"features"`
}

// styleFeatures evaluates the style for every feature, holding a slot of sema for the duration
func styleFeatures(
	ctx context.Context,
	sema *semaphore.Semaphore,
	style styling.Style,
	features []*geojson.Feature,
	resolution float64,
	includeGeometry bool,
) *styledFeaturesResponse {
	sema.Add()
	defer sema.Done()

	span := tracing.StartSpan(ctx, "evaluate styles")
	defer span.End(ctx)

	styled := make([]*styledFeature, 0, len(features))
	for _, feature := range features {
		item := &styledFeature{
			ID:           feature.ID,
			Instructions: styling.NewDrawInstructions(style.GetFeatureStyles(ownmap.NewGeoJSONFeature(feature), resolution)),
		}
		if includeGeometry {
			item.Feature = feature
		}
		styled = append(styled, item)
	}

	return &styledFeaturesResponse{
		StyleID:    style.GetStyleID(),
		Resolution: resolution,
		Background: style.GetBackground(),
		Features:   styled,
	}
}

// resolutionFromQuery reads "resolution", or failing that "zoom", from the query string
func resolutionFromQuery(query url.Values, view *ownmap.WebMercatorView) (float64, errorsx.Error) {
	if resolutionStr := query.Get("resolution"); resolutionStr != "" {
		resolution, err := strconv.ParseFloat(resolutionStr, 64)
		if err != nil {
			return 0, errorsx.Wrap(err, "resolution", resolutionStr)
		}
		if !(resolution > 0) {
			return 0, errorsx.Errorf("resolution must be greater than 0, but was %v", resolution)
		}
		return resolution, nil
	}

	if zoomStr := query.Get("zoom"); zoomStr != "" {
		zoom, err := strconv.ParseFloat(zoomStr, 64)
		if err != nil {
			return 0, errorsx.Wrap(err, "zoom", zoomStr)
		}
		if zoom < float64(ownmap.MinZoomLevel) || zoom > float64(ownmap.MaxZoomLevel) {
			return 0, errorsx.Errorf("zoom level %v out of range [%v, %v]", zoom, ownmap.MinZoomLevel, ownmap.MaxZoomLevel)
		}
		return view.ResolutionForZoom(ownmap.ZoomLevel(zoom)), nil
	}

	return 0, errorsx.Errorf("either the resolution or the zoom query parameter is required")
}
