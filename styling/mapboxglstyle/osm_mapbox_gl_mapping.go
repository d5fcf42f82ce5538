package mapboxglstyle

import (
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/paulmach/osm"
)

// https://openmaptiles.org/schema/
const (
	SourceLayerTransportation = "transportation"
	SourceLayerLandcover      = "landcover"
	SourceLayerLanduse        = "landuse"
	SourceLayerWaterway       = "waterway"
	SourceLayerPlace          = "place"
	SourceLayerAeroway        = "aeroway"
	SourceLayerBoundary       = "boundary"
)

// the OSM "layer" tag clashes with the source layer property, so it is kept under this key
const osmLayerPropertyKey = "osm_layer"

// sourceLayerClasses is checked in order; the first class whose tags match wins
var sourceLayerClasses = []struct {
	SourceLayer string
	Classes     []string
}{
	{SourceLayerPlace, nil},
	{SourceLayerAeroway, nil},
	{SourceLayerTransportation, []string{"motorway", "trunk", "primary", "secondary", "tertiary", "minor", "service", "track", "path", "pier", "rail", "transit", "aeroway"}},
	{SourceLayerLandcover, []string{"wood", "grass", "sand", "agriculture", "national_park"}},
	{SourceLayerWaterway, nil},
}

var subclasses = []string{"ice_shelf", "glacier"}

type osmTag struct {
	Key   string
	Value string
}

func mapMapboxGLClassToOSMTags(className, sourceLayer string) []osmTag {
	switch sourceLayer {
	case SourceLayerLanduse, SourceLayerLandcover:
		// according to the docs, "landuse" should be used. However some mapbox styles use "landcover"
		// https://docs.mapbox.com/vector-tiles/reference/mapbox-streets-v8/
		switch className {
		case "agriculture":
			return []osmTag{
				{Key: "landuse", Value: "farmland"},
				{Key: "landuse", Value: "meadow"},
				{Key: "landuse", Value: "orchard"},
				{Key: "landuse", Value: "agriculture"}, // deprecated by OSM, still may be usages of it though.
			}
		case "grass":
			return []osmTag{
				{Key: "landuse", Value: "grass"},
			}
		case "wood":
			return []osmTag{
				{Key: "natural", Value: "wood"},
				{Key: "landuse", Value: "forest"},
				{Key: "landcover", Value: "trees"},
			}
		case "sand":
			return []osmTag{
				{Key: "natural", Value: "sand"},
			}
		case "national_park":
			return []osmTag{
				{Key: "boundary", Value: "national_park"},
			}
		default:
			return nil
		}
	case SourceLayerTransportation:
		switch className {
		case "pier":
			return []osmTag{
				{Key: "man_made", Value: "pier"},
			}
		case "path":
			return []osmTag{
				{Key: "highway", Value: "path"},
				{Key: "highway", Value: "footway"},
				{Key: "highway", Value: "cycleway"},
				{Key: "highway", Value: "bridleway"},
				{Key: "highway", Value: "steps"},
			}
		case "track":
			return []osmTag{
				{Key: "highway", Value: "track"},
			}
		case "minor", "minor_road":
			return []osmTag{
				{Key: "highway", Value: "unclassified"},
				{Key: "highway", Value: "residential"},
				{Key: "highway", Value: "living_street"},
			}
		case "aeroway":
			return []osmTag{
				{Key: "aeroway", Value: "*"},
			}
		case "trunk", "primary", "service", "secondary", "tertiary", "motorway":
			return []osmTag{
				{Key: "highway", Value: className},
				{Key: "highway", Value: className + "_link"},
			}
		case "rail":
			return []osmTag{
				{Key: "railway", Value: "rail"},
			}
		case "transit":
			return []osmTag{
				{Key: "railway", Value: "*"},
			}
		default:
			return nil
		}
	case SourceLayerAeroway, "airport_label", "housenum_label", SourceLayerPlace, SourceLayerWaterway:
		// OpenStreetMap replication
		return []osmTag{
			{Key: sourceLayer, Value: className},
		}
	default:
		return nil
	}
}

func mapMapboxGLSubclassToOSMTags(subclassName, sourceLayer string) []osmTag {
	switch subclassName {
	case "ice_shelf":
		return []osmTag{
			{Key: "glacier:type", Value: "shelf"},
		}
	case "glacier":
		return []osmTag{
			{Key: "natural", Value: "glacier"},
		}
	default:
		return nil
	}
}

// https://docs.mapbox.com/vector-tiles/reference/mapbox-streets-v8/
func isClassTypeShown(
	className,
	sourceLayer string,
	objectTags osm.Tags,
	mapperFunc func(className, sourceLayer string) []osmTag,
) bool {
	lookingForOsmTags := mapperFunc(className, sourceLayer)
	for _, needleTag := range lookingForOsmTags {
		for _, objectTag := range objectTags {
			if objectTag.Key == needleTag.Key {
				if needleTag.Value == "*" || needleTag.Value == objectTag.Value {
					return true
				}
			}
		}
	}
	return false
}

func areTagsInSourceLayer(sourceLayer string, tags osm.Tags) bool {
	for _, tag := range tags {
		switch sourceLayer {
		case SourceLayerTransportation:
			switch tag.Key {
			case "highway", "railway", "man_made", "aeroway":
				return true
			}
		case SourceLayerLandcover:
			switch tag.Key {
			case "landcover", "landuse", "natural", "boundary":
				return true
			}
		default:
			if tag.Key == sourceLayer {
				return true
			}
		}
	}
	return false
}

// classifyOSMTags finds the OpenMapTiles source layer and class of an OSM object
func classifyOSMTags(tags osm.Tags) (sourceLayer, class string) {
	for _, candidate := range sourceLayerClasses {
		if !areTagsInSourceLayer(candidate.SourceLayer, tags) {
			continue
		}

		if candidate.Classes == nil {
			// the class is the value of the tag named after the source layer
			return candidate.SourceLayer, tags.Find(candidate.SourceLayer)
		}

		for _, className := range candidate.Classes {
			if isClassTypeShown(className, candidate.SourceLayer, tags, mapMapboxGLClassToOSMTags) {
				return candidate.SourceLayer, className
			}
		}

		if classifyOSMSubclass(candidate.SourceLayer, tags) != "" {
			return candidate.SourceLayer, ""
		}
	}

	return "", ""
}

func classifyOSMSubclass(sourceLayer string, tags osm.Tags) string {
	for _, subclass := range subclasses {
		if isClassTypeShown(subclass, sourceLayer, tags, mapMapboxGLSubclassToOSMTags) {
			return subclass
		}
	}
	return ""
}

// OSMFeature presents an OSM node, way or relation as a styleable feature
type OSMFeature struct {
	ID           int64
	Properties   ownmap.PropertyMap
	GeometryType ownmap.GeometryType
}

func NewOSMFeature(object osm.Object) *OSMFeature {
	var tags osm.Tags
	feature := new(OSMFeature)

	switch obj := object.(type) {
	case *osm.Node:
		feature.ID = int64(obj.ID)
		feature.GeometryType = ownmap.GeometryTypePoint
		tags = obj.Tags
	case *osm.Way:
		feature.ID = int64(obj.ID)
		feature.GeometryType = wayGeometryType(obj)
		tags = obj.Tags
	case *osm.Relation:
		feature.ID = int64(obj.ID)
		feature.GeometryType = ownmap.GeometryTypeUnknown
		switch obj.Tags.Find("type") {
		case "multipolygon", "boundary":
			feature.GeometryType = ownmap.GeometryTypePolygon
		}
		tags = obj.Tags
	}

	properties := ownmap.NewPropertyMapFromOSMTags(tags)
	if osmLayer, ok := properties[ownmap.LayerPropertyKey]; ok {
		properties[osmLayerPropertyKey] = osmLayer
		delete(properties, ownmap.LayerPropertyKey)
	}

	sourceLayer, class := classifyOSMTags(tags)
	if sourceLayer != "" {
		properties[ownmap.LayerPropertyKey] = sourceLayer
		if class != "" {
			properties[FilterThingClass] = class
		}
		if subclass := classifyOSMSubclass(sourceLayer, tags); subclass != "" {
			properties[FilterThingSubclass] = subclass
		}
	}

	feature.Properties = properties
	return feature
}

// NewOSMFeatures adapts every node, way and relation of an OSM document, in that order
func NewOSMFeatures(o *osm.OSM) []ownmap.Feature {
	var features []ownmap.Feature
	for _, node := range o.Nodes {
		features = append(features, NewOSMFeature(node))
	}
	for _, way := range o.Ways {
		features = append(features, NewOSMFeature(way))
	}
	for _, relation := range o.Relations {
		features = append(features, NewOSMFeature(relation))
	}
	return features
}

func wayGeometryType(way *osm.Way) ownmap.GeometryType {
	nodes := way.Nodes
	isClosed := len(nodes) >= 4 && nodes[0].ID == nodes[len(nodes)-1].ID
	if !isClosed {
		return ownmap.GeometryTypeLineString
	}

	switch way.Tags.Find("area") {
	case "yes":
		return ownmap.GeometryTypePolygon
	case "no":
		return ownmap.GeometryTypeLineString
	}

	if way.Tags.Find("highway") != "" || way.Tags.Find("barrier") != "" || way.Tags.Find("railway") != "" {
		return ownmap.GeometryTypeLineString
	}

	return ownmap.GeometryTypePolygon
}

func (f *OSMFeature) GetID() interface{} {
	return f.ID
}

func (f *OSMFeature) GetProperties() ownmap.PropertyMap {
	return f.Properties
}

func (f *OSMFeature) GetGeometryType() ownmap.GeometryType {
	return f.GeometryType
}
