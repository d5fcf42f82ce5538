package ownmap

// GeometryType is the ordinal used by style filters to classify a feature's geometry.
// Multi-geometries share the ordinal of their singular form.
type GeometryType int

const (
	GeometryTypeUnknown    GeometryType = 0
	GeometryTypePoint      GeometryType = 1
	GeometryTypeLineString GeometryType = 2
	GeometryTypePolygon    GeometryType = 3
)

// GeometryTypeNames is indexed by GeometryType
var GeometryTypeNames = []string{
	"Unknown",
	"Point",
	"LineString",
	"Polygon",
}

func (gt GeometryType) String() string {
	if gt < 0 || int(gt) >= len(GeometryTypeNames) {
		return "Invalid"
	}
	return GeometryTypeNames[gt]
}

// GeometryTypeFromName looks the name up in GeometryTypeNames. Names outside the table give -1.
func GeometryTypeFromName(name string) GeometryType {
	for i, typeName := range GeometryTypeNames {
		if typeName == name {
			return GeometryType(i)
		}
	}
	return -1
}

// GeometryTypeFromGeoJSONType classifies a GeoJSON geometry type name
func GeometryTypeFromGeoJSONType(geoJSONType string) GeometryType {
	switch geoJSONType {
	case "Point", "MultiPoint":
		return GeometryTypePoint
	case "LineString", "MultiLineString":
		return GeometryTypeLineString
	case "Polygon", "MultiPolygon":
		return GeometryTypePolygon
	default:
		return GeometryTypeUnknown
	}
}

type ZoomLevel float64

const (
	MinZoomLevel ZoomLevel = 0
	MaxZoomLevel ZoomLevel = 28
)

// PropertyMap is the property bag of a feature
type PropertyMap map[string]interface{}

// LayerPropertyKey is the property holding the source layer a feature belongs to
const LayerPropertyKey = "layer"

// Feature is anything that can be styled or filtered.
type Feature interface {
	GetID() interface{}
	GetProperties() PropertyMap
	GetGeometryType() GeometryType
}
