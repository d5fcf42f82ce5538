package mapboxglstyle

import (
	"encoding/json"
	"testing"

	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFilter(t *testing.T, s string) Filter {
	var filter Filter
	err := json.Unmarshal([]byte(s), &filter)
	require.NoError(t, err)
	return filter
}

func TestEvaluateFilter(t *testing.T) {
	point := &ownmap.SimpleFeature{GeometryType: ownmap.GeometryTypePoint}
	polygon := &ownmap.SimpleFeature{GeometryType: ownmap.GeometryTypePolygon, ID: 42}

	type args struct {
		filter     string
		properties ownmap.PropertyMap
		feature    FilterFeature
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "null filter",
			args: args{filter: `null`, feature: point},
			want: true,
		}, {
			name: "empty any",
			args: args{filter: `["any"]`, feature: point},
			want: false,
		}, {
			name: "empty all",
			args: args{filter: `["all"]`, feature: point},
			want: true,
		}, {
			name: "empty none",
			args: args{filter: `["none"]`, feature: point},
			want: true,
		}, {
			name: "empty array",
			args: args{filter: `[]`, feature: point},
			want: true,
		}, {
			name: "not an array",
			args: args{filter: `"whatever"`, feature: point},
			want: true,
		}, {
			name: "unknown operator",
			args: args{filter: `["within", "class", 1]`, feature: point},
			want: true,
		}, {
			name: "$type matches",
			args: args{filter: `["==", "$type", "Point"]`, feature: point},
			want: true,
		}, {
			name: "$type does not match",
			args: args{filter: `["==", "$type", "Polygon"]`, feature: point},
			want: false,
		}, {
			name: "$type unknown name",
			args: args{filter: `["==", "$type", "Circle"]`, feature: point},
			want: false,
		}, {
			name: "$type not equal",
			args: args{filter: `["!=", "$type", "Polygon"]`, feature: point},
			want: true,
		}, {
			name: "$type in",
			args: args{filter: `["in", "$type", "LineString", "Polygon"]`, feature: polygon},
			want: true,
		}, {
			name: "$id equals feature id",
			args: args{filter: `["==", "$id", 42]`, feature: polygon},
			want: true,
		}, {
			name: "$id falls back to the id property",
			args: args{filter: `["==", "$id", 7]`, properties: ownmap.PropertyMap{"id": 7}, feature: point},
			want: true,
		}, {
			name: "string equals",
			args: args{filter: `["==", "class", "wood"]`, properties: ownmap.PropertyMap{"class": "wood"}, feature: point},
			want: true,
		}, {
			name: "missing property equals",
			args: args{filter: `["==", "class", "wood"]`, feature: point},
			want: false,
		}, {
			name: "missing property not equal",
			args: args{filter: `["!=", "class", "wood"]`, feature: point},
			want: true,
		}, {
			name: "missing property ordering",
			args: args{filter: `["<", "rank", 3]`, feature: point},
			want: false,
		}, {
			name: "numeric comparison across types",
			args: args{filter: `["<=", "rank", 3]`, properties: ownmap.PropertyMap{"rank": int64(3)}, feature: point},
			want: true,
		}, {
			name: "greater than",
			args: args{filter: `[">", "rank", 3]`, properties: ownmap.PropertyMap{"rank": 2.5}, feature: point},
			want: false,
		}, {
			name: "string ordering",
			args: args{filter: `[">=", "name", "b"]`, properties: ownmap.PropertyMap{"name": "c"}, feature: point},
			want: true,
		}, {
			name: "mismatched types equal",
			args: args{filter: `["==", "rank", "3"]`, properties: ownmap.PropertyMap{"rank": 3}, feature: point},
			want: false,
		}, {
			name: "mismatched types not equal",
			args: args{filter: `["!=", "rank", "3"]`, properties: ownmap.PropertyMap{"rank": 3}, feature: point},
			want: true,
		}, {
			name: "boolean equal",
			args: args{filter: `["==", "oneway", true]`, properties: ownmap.PropertyMap{"oneway": true}, feature: point},
			want: true,
		}, {
			name: "in",
			args: args{filter: `["in", "class", "residential", "suburb"]`, properties: ownmap.PropertyMap{"class": "suburb"}, feature: point},
			want: true,
		}, {
			name: "in, missing property",
			args: args{filter: `["in", "class", "residential", "suburb"]`, feature: point},
			want: false,
		}, {
			name: "not in",
			args: args{filter: `["!in", "class", "residential", "suburb"]`, properties: ownmap.PropertyMap{"class": "city"}, feature: point},
			want: true,
		}, {
			name: "has",
			args: args{filter: `["has", "name"]`, properties: ownmap.PropertyMap{"name": "x"}, feature: point},
			want: true,
		}, {
			name: "not has",
			args: args{filter: `["!has", "name"]`, properties: ownmap.PropertyMap{"name": "x"}, feature: point},
			want: false,
		}, {
			name: "has $id checks the id property",
			args: args{filter: `["has", "$id"]`, properties: ownmap.PropertyMap{"id": 1}, feature: polygon},
			want: true,
		}, {
			name: "has $id without id property",
			args: args{filter: `["has", "$id"]`, feature: polygon},
			want: false,
		}, {
			name: "all",
			args: args{filter: `["all", ["==", "$type", "Polygon"], ["in", "class", "residential", "suburb"]]`, properties: ownmap.PropertyMap{"class": "residential"}, feature: polygon},
			want: true,
		}, {
			name: "any",
			args: args{filter: `["any", ["==", "class", "a"], ["==", "class", "b"]]`, properties: ownmap.PropertyMap{"class": "b"}, feature: point},
			want: true,
		}, {
			name: "none",
			args: args{filter: `["none", ["==", "class", "a"], ["==", "class", "b"]]`, properties: ownmap.PropertyMap{"class": "b"}, feature: point},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			properties := tt.args.properties
			if properties == nil {
				properties = ownmap.PropertyMap{}
			}
			got := EvaluateFilter(parseFilter(t, tt.args.filter), properties, tt.args.feature)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateFilter_multiGeometriesCollapse(t *testing.T) {
	filter := parseFilter(t, `["==", "$type", "Point"]`)

	point := ownmap.NewGeoJSONFeature(geojson.NewFeature(orb.Point{1, 2}))
	multiPoint := ownmap.NewGeoJSONFeature(geojson.NewFeature(orb.MultiPoint{{1, 2}, {3, 4}}))
	line := ownmap.NewGeoJSONFeature(geojson.NewFeature(orb.LineString{{1, 2}, {3, 4}}))

	assert.True(t, EvaluateFilter(filter, point.GetProperties(), point))
	assert.True(t, EvaluateFilter(filter, multiPoint.GetProperties(), multiPoint))
	assert.False(t, EvaluateFilter(filter, line.GetProperties(), line))
}

func TestCompileFilter(t *testing.T) {
	assert.Nil(t, CompileFilter(nil))

	filterFunc := CompileFilter(parseFilter(t, `["==", "class", "wood"]`))
	require.NotNil(t, filterFunc)

	feature := &ownmap.SimpleFeature{GeometryType: ownmap.GeometryTypePolygon}
	assert.True(t, filterFunc(ownmap.PropertyMap{"class": "wood"}, feature))
	assert.False(t, filterFunc(ownmap.PropertyMap{"class": "grass"}, feature))
}

func Test_substituteFilterConstants(t *testing.T) {
	filter := parseFilter(t, `["all", ["==", "class", "@class"], [">", "rank", "@rank"]]`)
	constants := Constants{"@class": "wood", "@rank": 3.0}

	substituted := substituteFilterConstants(filter, constants)

	assert.Equal(t, []interface{}{
		"all",
		[]interface{}{"==", "class", "wood"},
		[]interface{}{">", "rank", 3.0},
	}, substituted)

	// the input filter is untouched
	assert.Equal(t, "@class", filter.([]interface{})[1].([]interface{})[2])
}
