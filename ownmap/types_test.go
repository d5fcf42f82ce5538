package ownmap

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func TestGeometryTypeFromGeoJSONType(t *testing.T) {
	tests := []struct {
		name string
		want GeometryType
	}{
		{"Point", GeometryTypePoint},
		{"MultiPoint", GeometryTypePoint},
		{"LineString", GeometryTypeLineString},
		{"MultiLineString", GeometryTypeLineString},
		{"Polygon", GeometryTypePolygon},
		{"MultiPolygon", GeometryTypePolygon},
		{"GeometryCollection", GeometryTypeUnknown},
		{"", GeometryTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GeometryTypeFromGeoJSONType(tt.name))
		})
	}
}

func TestGeometryTypeFromName(t *testing.T) {
	assert.Equal(t, GeometryTypeUnknown, GeometryTypeFromName("Unknown"))
	assert.Equal(t, GeometryTypePoint, GeometryTypeFromName("Point"))
	assert.Equal(t, GeometryTypeLineString, GeometryTypeFromName("LineString"))
	assert.Equal(t, GeometryTypePolygon, GeometryTypeFromName("Polygon"))
	assert.Equal(t, GeometryType(-1), GeometryTypeFromName("MultiPoint"))
	assert.Equal(t, GeometryType(-1), GeometryTypeFromName("point"))
}

func TestGeoJSONFeature(t *testing.T) {
	feature := geojson.NewFeature(orb.MultiPoint{{1, 2}, {3, 4}})
	feature.ID = "abc"
	feature.Properties["layer"] = "poi"

	f := NewGeoJSONFeature(feature)
	assert.Equal(t, "abc", f.GetID())
	assert.Equal(t, GeometryTypePoint, f.GetGeometryType())

	layer, ok := f.GetProperties().Layer()
	assert.True(t, ok)
	assert.Equal(t, "poi", layer)

	noGeometry := NewGeoJSONFeature(&geojson.Feature{})
	assert.Equal(t, GeometryTypeUnknown, noGeometry.GetGeometryType())
	assert.NotNil(t, noGeometry.GetProperties())
}
