package ownmap

import (
	"github.com/paulmach/osm"
)

// NewPropertyMapFromOSMTags copies OSM tags into a property bag
func NewPropertyMapFromOSMTags(osmTags osm.Tags) PropertyMap {
	properties := make(PropertyMap, len(osmTags))
	for _, tag := range osmTags {
		properties[tag.Key] = tag.Value
	}
	return properties
}

type TagMap map[string]string

// TagMap returns the string valued properties only
func (pm PropertyMap) TagMap() TagMap {
	if len(pm) == 0 {
		return nil
	}

	m := make(TagMap)
	for key, value := range pm {
		s, ok := value.(string)
		if !ok {
			continue
		}
		m[key] = s
	}

	return m
}

// Layer gives the source-layer tag of the feature, if any
func (pm PropertyMap) Layer() (string, bool) {
	layer, ok := pm[LayerPropertyKey].(string)
	return layer, ok
}
