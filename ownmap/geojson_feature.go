package ownmap

import (
	"github.com/paulmach/orb/geojson"
)

var _ Feature = &GeoJSONFeature{}

// GeoJSONFeature adapts an orb GeoJSON feature
type GeoJSONFeature struct {
	*geojson.Feature
}

func NewGeoJSONFeature(feature *geojson.Feature) *GeoJSONFeature {
	return &GeoJSONFeature{feature}
}

// NewGeoJSONFeatures wraps every feature in the collection
func NewGeoJSONFeatures(collection *geojson.FeatureCollection) []Feature {
	features := make([]Feature, 0, len(collection.Features))
	for _, feature := range collection.Features {
		features = append(features, NewGeoJSONFeature(feature))
	}
	return features
}

func (f *GeoJSONFeature) GetID() interface{} {
	return f.ID
}

func (f *GeoJSONFeature) GetProperties() PropertyMap {
	if f.Properties == nil {
		return PropertyMap{}
	}
	return PropertyMap(f.Properties)
}

func (f *GeoJSONFeature) GetGeometryType() GeometryType {
	if f.Geometry == nil {
		return GeometryTypeUnknown
	}

	return GeometryTypeFromGeoJSONType(f.Geometry.GeoJSONType())
}

// SimpleFeature is a Feature without geometry data, for when only the classification is known
type SimpleFeature struct {
	ID           interface{}
	Properties   PropertyMap
	GeometryType GeometryType
}

func (f *SimpleFeature) GetID() interface{} {
	return f.ID
}

func (f *SimpleFeature) GetProperties() PropertyMap {
	return f.Properties
}

func (f *SimpleFeature) GetGeometryType() GeometryType {
	return f.GeometryType
}
