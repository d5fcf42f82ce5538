package mapboxglstyle

import (
	"encoding/json"

	"github.com/jamesrr39/goutil/errorsx"
)

type LayerType string

const (
	LayerTypeBackground LayerType = "background"
	LayerTypeFill       LayerType = "fill"
	LayerTypeLine       LayerType = "line"
	LayerTypeSymbol     LayerType = "symbol"
	LayerTypeText       LayerType = "text"
	LayerTypeIcon       LayerType = "icon"
	LayerTypeCircle     LayerType = "circle"

	// recognised, but never drawn
	LayerTypeRaster        LayerType = "raster"
	LayerTypeFillExtrusion LayerType = "fill-extrusion"
	LayerTypeHeatmap       LayerType = "heatmap"
	LayerTypeHillshade     LayerType = "hillshade"
)

const (
	minAllowedZoom = 0
	maxAllowedZoom = 24
)

// Properties is a paint or layout map. Values are literal scalars, "@constant" references,
// zoom functions or expressions.
type Properties map[string]interface{}

type Metadata map[string]interface{}

// Layer is a single style rule. It is never modified by compilation.
type Layer struct {
	ID          string     `json:"id"`
	Type        LayerType  `json:"type"`
	Source      string     `json:"source,omitempty"`
	SourceLayer string     `json:"source-layer,omitempty"`
	MinZoom     *float64   `json:"minzoom,omitempty"`
	MaxZoom     *float64   `json:"maxzoom,omitempty"`
	Filter      Filter     `json:"filter,omitempty"`
	Layout      Properties `json:"layout,omitempty"`
	Paint       Properties `json:"paint,omitempty"`
	Metadata    Metadata   `json:"metadata,omitempty"`

	// Extra holds any JSON keys not modelled above, so layers round-trip without loss
	Extra map[string]json.RawMessage `json:"-"`
}

type layerAlias Layer

var layerJSONKeys = []string{
	"id", "type", "source", "source-layer", "minzoom", "maxzoom", "filter", "layout", "paint", "metadata",
}

func (l *Layer) UnmarshalJSON(data []byte) error {
	alias := new(layerAlias)
	err := json.Unmarshal(data, alias)
	if err != nil {
		return err
	}

	var all map[string]json.RawMessage
	err = json.Unmarshal(data, &all)
	if err != nil {
		return err
	}

	for _, key := range layerJSONKeys {
		delete(all, key)
	}

	*l = Layer(*alias)
	if len(all) != 0 {
		l.Extra = all
	}

	return nil
}

func (l *Layer) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal((*layerAlias)(l))
	if err != nil {
		return nil, err
	}

	if len(l.Extra) == 0 {
		return b, nil
	}

	var all map[string]json.RawMessage
	err = json.Unmarshal(b, &all)
	if err != nil {
		return nil, err
	}

	for k, v := range l.Extra {
		if _, ok := all[k]; ok {
			continue
		}
		all[k] = v
	}

	return json.Marshal(all)
}

func (l *Layer) Validate() errorsx.Error {
	if l.MaxZoom != nil && l.MinZoom != nil {
		if *l.MaxZoom < *l.MinZoom {
			return errorsx.Errorf("max zoom is smaller than min zoom")
		}
	}

	if l.MaxZoom != nil && (*l.MaxZoom < minAllowedZoom || *l.MaxZoom > maxAllowedZoom) {
		return errorsx.Errorf("max zoom must be between %d and %d (inclusive) but was %f", minAllowedZoom, maxAllowedZoom, *l.MaxZoom)
	}

	if l.MinZoom != nil && (*l.MinZoom < minAllowedZoom || *l.MinZoom > maxAllowedZoom) {
		return errorsx.Errorf("min zoom must be between %d and %d (inclusive) but was %f", minAllowedZoom, maxAllowedZoom, *l.MinZoom)
	}

	return nil
}

type Source struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

type Sources map[string]Source
