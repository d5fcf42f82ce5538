package ownmap

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
)

func TestNewPropertyMapFromOSMTags(t *testing.T) {
	properties := NewPropertyMapFromOSMTags(osm.Tags{
		{Key: "highway", Value: "primary"},
		{Key: "name", Value: "Main Street"},
	})

	assert.Equal(t, PropertyMap{"highway": "primary", "name": "Main Street"}, properties)
}

func TestPropertyMap_TagMap(t *testing.T) {
	properties := PropertyMap{
		"name":  "Oslo",
		"rank":  3,
		"layer": "place",
	}

	assert.Equal(t, TagMap{"name": "Oslo", "layer": "place"}, properties.TagMap())
	assert.Nil(t, PropertyMap{}.TagMap())
}
