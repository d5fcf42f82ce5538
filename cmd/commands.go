package main

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"os"
	"strconv"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/predicate"
	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/jamesrr39/ownmap-gis/styling/mapboxglstyle"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
	"gopkg.in/alecthomas/kingpin.v2"
)

func setupBuildFilter() {
	cmd := kingpin.Command("build-filter", "render a JSON list of predicates as a filter string")
	dialect := cmd.Flag("dialect", "one of default, sql, cql, ogc").Default(string(predicate.DialectDefault)).String()
	predicatesFilePath := cmd.Arg("predicates-file", "JSON file with a list of predicates").Required().String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		return runAction(func() errorsx.Error {
			predicate.SetLogger(newLogger())

			data, err := os.ReadFile(*predicatesFilePath)
			if err != nil {
				return errorsx.Wrap(err)
			}

			return buildFilter(os.Stdout, *dialect, data)
		})
	})
}

type builtFilter struct {
	Filter string   `json:"filter"`
	Hashes []string `json:"hashes"`
}

func buildFilter(writer io.Writer, dialectStr string, predicatesJSON []byte) errorsx.Error {
	dialect, err := predicate.ParseDialect(dialectStr)
	if err != nil {
		return errorsx.Wrap(err)
	}

	predicates, err := predicate.ParseJSONList(predicatesJSON)
	if err != nil {
		return errorsx.Wrap(err)
	}

	builder := predicate.NewFilterBuilder(predicates, dialect)
	filter, err := builder.Build()
	if err != nil {
		return errorsx.Wrap(err)
	}

	result := builtFilter{Filter: filter, Hashes: []string{}}
	for _, hash := range builder.Hashes() {
		result.Hashes = append(result.Hashes, strconv.FormatUint(hash, 16))
	}

	return writeJSON(writer, result)
}

func setupStyleFeatures() {
	cmd := kingpin.Command("style-features", "print the draw instructions of a style for the features of a GeoJSON file")
	zoom := cmd.Flag("zoom", "zoom level to evaluate the style at").Default("14").Float64()
	styleFilePath := cmd.Arg("style-file", "Mapbox GL style document").Required().String()
	geoJSONFilePath := cmd.Arg("geojson-file", "GeoJSON FeatureCollection").Required().String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		return runAction(func() errorsx.Error {
			style, err := loadStyle(newLogger(), *styleFilePath)
			if err != nil {
				return errorsx.Wrap(err)
			}

			data, readErr := os.ReadFile(*geoJSONFilePath)
			if readErr != nil {
				return errorsx.Wrap(readErr)
			}

			collection, readErr := geojson.UnmarshalFeatureCollection(data)
			if readErr != nil {
				return errorsx.Wrap(readErr)
			}

			return writeStyledFeatures(os.Stdout, style, ownmap.NewGeoJSONFeatures(collection), *zoom)
		})
	})
}

func setupStyleOSM() {
	cmd := kingpin.Command("style-osm", "print the draw instructions of a style for the objects of an OSM XML file, classified into OpenMapTiles layers")
	zoom := cmd.Flag("zoom", "zoom level to evaluate the style at").Default("14").Float64()
	styleFilePath := cmd.Arg("style-file", "Mapbox GL style document").Required().String()
	osmFilePath := cmd.Arg("osm-file", "OSM XML file").Required().String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		return runAction(func() errorsx.Error {
			style, err := loadStyle(newLogger(), *styleFilePath)
			if err != nil {
				return errorsx.Wrap(err)
			}

			file, openErr := os.Open(*osmFilePath)
			if openErr != nil {
				return errorsx.Wrap(openErr)
			}
			defer file.Close()

			features, err := readOSMFeatures(file)
			if err != nil {
				return errorsx.Wrap(err)
			}

			return writeStyledFeatures(os.Stdout, style, features, *zoom)
		})
	})
}

func readOSMFeatures(reader io.Reader) ([]ownmap.Feature, errorsx.Error) {
	o := new(osm.OSM)
	err := xml.NewDecoder(reader).Decode(o)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return mapboxglstyle.NewOSMFeatures(o), nil
}

type styledFeatureOutput struct {
	ID           interface{}                `json:"id"`
	Instructions []*styling.DrawInstruction `json:"instructions"`
}

func writeStyledFeatures(writer io.Writer, style styling.Style, features []ownmap.Feature, zoom float64) errorsx.Error {
	if zoom < float64(ownmap.MinZoomLevel) || zoom > float64(ownmap.MaxZoomLevel) {
		return errorsx.Errorf("zoom level %v out of range [%v, %v]", zoom, ownmap.MinZoomLevel, ownmap.MaxZoomLevel)
	}

	resolution := ownmap.DefaultView.ResolutionForZoom(ownmap.ZoomLevel(zoom))

	output := []*styledFeatureOutput{}
	for _, feature := range features {
		output = append(output, &styledFeatureOutput{
			ID:           feature.GetID(),
			Instructions: styling.NewDrawInstructions(style.GetFeatureStyles(feature, resolution)),
		})
	}

	return writeJSON(writer, output)
}

func writeJSON(writer io.Writer, value interface{}) errorsx.Error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "\t")

	err := encoder.Encode(value)
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}
