package mapboxglstyle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayer_jsonRoundTrip(t *testing.T) {
	raw := `{
		"id": "water",
		"type": "fill",
		"source": "openmaptiles",
		"source-layer": "water",
		"minzoom": 2,
		"filter": ["==", "$type", "Polygon"],
		"layout": {"visibility": "visible"},
		"paint": {"fill-color": "@water"},
		"metadata": {"mapbox:group": "1444849382550.77"},
		"interactive": true,
		"ref": "other"
	}`

	layer := new(Layer)
	err := json.Unmarshal([]byte(raw), layer)
	require.NoError(t, err)

	assert.Equal(t, "water", layer.ID)
	assert.Equal(t, LayerTypeFill, layer.Type)
	assert.Equal(t, "water", layer.SourceLayer)
	require.NotNil(t, layer.MinZoom)
	assert.Equal(t, 2.0, *layer.MinZoom)
	assert.Nil(t, layer.MaxZoom)
	assert.Len(t, layer.Extra, 2)

	b, err := json.Marshal(layer)
	require.NoError(t, err)

	assert.JSONEq(t, raw, string(b))
}

func TestLayer_jsonWithoutExtraKeys(t *testing.T) {
	raw := `{"id": "bg", "type": "background", "paint": {"background-color": "#fff"}}`

	layer := new(Layer)
	err := json.Unmarshal([]byte(raw), layer)
	require.NoError(t, err)
	assert.Nil(t, layer.Extra)

	b, err := json.Marshal(layer)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(b))
}

func TestLayer_Validate(t *testing.T) {
	zoom := func(f float64) *float64 {
		return &f
	}

	tests := []struct {
		name    string
		layer   *Layer
		wantErr bool
	}{
		{"no zooms", &Layer{}, false},
		{"valid range", &Layer{MinZoom: zoom(3), MaxZoom: zoom(14)}, false},
		{"only max zoom", &Layer{MaxZoom: zoom(24)}, false},
		{"min above max", &Layer{MinZoom: zoom(14), MaxZoom: zoom(3)}, true},
		{"max zoom too big", &Layer{MaxZoom: zoom(25)}, true},
		{"negative min zoom", &Layer{MinZoom: zoom(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layer.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
