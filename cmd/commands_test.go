package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/ownmapdal"
	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStyleJSON = `{
	"version": 8,
	"name": "roads",
	"layers": [
		{"id": "primary", "type": "line", "filter": ["==", "class", "primary"], "paint": {"line-color": "#ff0000", "line-width": 3}},
		{"id": "woods", "type": "fill", "source-layer": "landcover", "filter": ["==", "class", "wood"], "paint": {"fill-color": "#00ff00"}}
	]
}`

var testLogger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelWarn)

func TestBuildFilter(t *testing.T) {
	predicatesJSON := []byte(`[
		{"field": {"key": "name", "type": "string"}, "operator": "equal", "value": "Main St"},
		{"field": {"key": "lanes", "type": "number"}, "operator": "gte", "not": true, "value": 2}
	]`)

	buf := bytes.NewBuffer(nil)
	err := buildFilter(buf, "sql", predicatesJSON)
	require.NoError(t, err)

	var result builtFilter
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "(name = 'Main St') && (lanes < 2)", result.Filter)
	assert.Len(t, result.Hashes, 2)
}

func TestBuildFilter_errors(t *testing.T) {
	assert.Error(t, buildFilter(bytes.NewBuffer(nil), "xpath", []byte(`[]`)))
	assert.Error(t, buildFilter(bytes.NewBuffer(nil), "sql", []byte(`{`)))
	assert.Error(t, buildFilter(bytes.NewBuffer(nil), "ogc", []byte(`[
		{"field": {"key": "a", "type": "number"}, "operator": "in", "value": [1, 2]}
	]`)))
}

func TestBuildFilter_empty(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := buildFilter(buf, "", []byte(`[]`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"filter": "INCLUDE", "hashes": []}`, buf.String())
}

func TestLoadStylesFromDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "roads.json"), []byte(testStyleJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(`styles`), 0644))

	unnamedDir := filepath.Join(dir, "unnamed")
	require.NoError(t, os.Mkdir(unnamedDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(unnamedDir, styleFileName), []byte(`{"version": 8, "layers": []}`), 0644))

	styleSet, err := loadStylesFromDir(testLogger, dir, "roads")
	require.NoError(t, err)

	assert.Equal(t, "roads", styleSet.GetDefaultStyle().GetStyleID())
	assert.ElementsMatch(t, []string{styling.BUILTIN_STYLEID, "roads", "unnamed"}, styleSet.GetAllStyleIDs())
}

func TestLoadStylesFromDir_missingDefault(t *testing.T) {
	_, err := loadStylesFromDir(testLogger, t.TempDir(), "roads")
	assert.Error(t, err)
}

func TestWriteStyledFeatures(t *testing.T) {
	dir := t.TempDir()
	stylePath := filepath.Join(dir, "roads.json")
	require.NoError(t, os.WriteFile(stylePath, []byte(testStyleJSON), 0644))

	style, err := loadStyle(testLogger, stylePath)
	require.NoError(t, err)

	features := []ownmap.Feature{
		&ownmap.SimpleFeature{ID: "a", Properties: ownmap.PropertyMap{"class": "primary"}, GeometryType: ownmap.GeometryTypeLineString},
		&ownmap.SimpleFeature{ID: "b", Properties: ownmap.PropertyMap{"class": "secondary"}, GeometryType: ownmap.GeometryTypeLineString},
	}

	buf := bytes.NewBuffer(nil)
	err = writeStyledFeatures(buf, style, features, 12)
	require.NoError(t, err)

	var output []struct {
		ID           string `json:"id"`
		Instructions []struct {
			Type  string                 `json:"type"`
			Style map[string]interface{} `json:"style"`
		} `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output, 2)
	assert.Equal(t, "a", output[0].ID)
	require.Len(t, output[0].Instructions, 1)
	assert.Equal(t, "line", output[0].Instructions[0].Type)
	assert.Equal(t, "primary", output[0].Instructions[0].Style["layerId"])
	assert.Empty(t, output[1].Instructions)

	err = writeStyledFeatures(bytes.NewBuffer(nil), style, features, 30)
	assert.Error(t, err)
}

func TestReadOSMFeatures(t *testing.T) {
	osmXML := `<osm version="0.6">
	<node id="1" lat="59.9" lon="10.7"/>
	<node id="2" lat="59.8" lon="10.8"/>
	<node id="3" lat="59.7" lon="10.9"/>
	<way id="20">
		<nd ref="1"/><nd ref="2"/><nd ref="3"/><nd ref="1"/>
		<tag k="natural" v="wood"/>
	</way>
</osm>`

	features, err := readOSMFeatures(strings.NewReader(osmXML))
	require.NoError(t, err)
	require.Len(t, features, 4)

	dir := t.TempDir()
	stylePath := filepath.Join(dir, "roads.json")
	require.NoError(t, os.WriteFile(stylePath, []byte(testStyleJSON), 0644))

	style, err := loadStyle(testLogger, stylePath)
	require.NoError(t, err)

	buf := bytes.NewBuffer(nil)
	err = writeStyledFeatures(buf, style, features[3:], 12)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"type": "fill"`)
	assert.Contains(t, buf.String(), `"layerId": "woods"`)
}

func TestOpenFeatureSources_unknownType(t *testing.T) {
	_, err := openFeatureSources([]*ownmapdal.SourceConfig{
		{Name: "roads", Type: "ownmapdb", Table: "roads"},
	})
	assert.Error(t, err)
}

func TestLoadConfig_noFile(t *testing.T) {
	config, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ownmapdal.DefaultAddr, config.Addr)
}
