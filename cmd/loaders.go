package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmapdal"
	"github.com/jamesrr39/ownmap-gis/ownmapdal/ownmapsqldb"
	"github.com/jamesrr39/ownmap-gis/ownmapdal/ownmapsqldb/ownmappostgresql"
	"github.com/jamesrr39/ownmap-gis/ownmapdal/parquetdb"
	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/jamesrr39/ownmap-gis/styling/mapboxglstyle"
)

const styleFileName = "style.json"

// loadStylesFromDir loads every style document in dir. Entries that fail to load are logged and skipped.
func loadStylesFromDir(logger *logpkg.Logger, dir, defaultStyleID string) (*styling.StyleSet, errorsx.Error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	styles := []styling.Style{&styling.CustomBasicStyle{}}
	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() && !strings.HasSuffix(dirEntry.Name(), ".json") {
			continue
		}

		stylePath := filepath.Join(dir, dirEntry.Name())
		style, err := loadStyle(logger, stylePath)
		if err != nil {
			logger.Error("error loading style from %q. Error: %q", stylePath, err)
			continue
		}

		styles = append(styles, style)
	}

	sort.Slice(styles, func(a, b int) bool {
		return styles[a].GetStyleID() < styles[b].GetStyleID()
	})

	styleSet, err := styling.NewStyleSet(styles, defaultStyleID)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return styleSet, nil
}

// loadStyle reads a style document, or the style.json inside a directory.
// A style without a name is named after its file (or directory).
func loadStyle(logger *logpkg.Logger, stylePath string) (*mapboxglstyle.MapboxGLStyle, errorsx.Error) {
	fileInfo, err := os.Stat(stylePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	filePath := stylePath
	fallbackName := strings.TrimSuffix(filepath.Base(stylePath), ".json")
	if fileInfo.IsDir() {
		filePath = filepath.Join(stylePath, styleFileName)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	defer file.Close()

	style, err := mapboxglstyle.ParseWithOptions(file, &mapboxglstyle.CompileOptions{Logger: logger})
	if err != nil {
		return nil, errorsx.Wrap(err, "filePath", filePath)
	}

	if style.Name == "" {
		style.Name = fallbackName
	}

	return style, nil
}

func openFeatureSource(sourceConfig *ownmapdal.SourceConfig) (ownmapdal.FeatureSource, errorsx.Error) {
	tableConfig := ownmapsqldb.TableConfig{
		Table:          sourceConfig.Table,
		GeometryColumn: sourceConfig.GeometryColumn,
		IDColumn:       sourceConfig.IDColumn,
	}

	var source *ownmapsqldb.SQLFeatureSource
	var err errorsx.Error
	switch sourceConfig.Type {
	case ownmapdal.SourceTypePostgresql:
		source, err = ownmappostgresql.NewFeatureSource(sourceConfig.Name, sourceConfig.Connection, tableConfig)
	case ownmapdal.SourceTypeDuckDB:
		source, err = parquetdb.NewDuckDBFeatureSource(sourceConfig.Name, sourceConfig.Connection, tableConfig)
	default:
		return nil, errorsx.Errorf("unrecognized source type: %q", sourceConfig.Type)
	}
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return source, nil
}

func openFeatureSources(sourceConfigs []*ownmapdal.SourceConfig) (*ownmapdal.FeatureSourceSet, errorsx.Error) {
	sourceSet, err := ownmapdal.NewFeatureSourceSet(nil)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	for _, sourceConfig := range sourceConfigs {
		source, err := openFeatureSource(sourceConfig)
		if err != nil {
			sourceSet.Close()
			return nil, errorsx.Wrap(err, "source", sourceConfig.Name)
		}

		err = sourceSet.AddSource(source)
		if err != nil {
			source.Close()
			sourceSet.Close()
			return nil, errorsx.Wrap(err)
		}
	}

	return sourceSet, nil
}
