package ownmapdal

import (
	"context"
	"errors"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/predicate"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	ErrSourceNotFound = errors.New("feature source not found")
)

// FeatureQuery selects features from a source. All predicates must hold for a feature to be returned.
type FeatureQuery struct {
	Predicates []predicate.Predicate
	// Bound is in EPSG:4326. nil means no spatial restriction.
	Bound *orb.Bound
	// Limit of 0 or less means no limit
	Limit int
}

type FeatureSource interface {
	Name() string
	QueryFeatures(ctx context.Context, query *FeatureQuery) (*geojson.FeatureCollection, errorsx.Error)
	Close() errorsx.Error
}

type SourceType string

const (
	SourceTypePostgresql SourceType = "postgresql"
	SourceTypeDuckDB     SourceType = "duckdb"
)

func (st SourceType) IsValid() bool {
	switch st {
	case SourceTypePostgresql, SourceTypeDuckDB:
		return true
	default:
		return false
	}
}

type SourceConnectionURL struct {
	Type           SourceType
	ConnectionPath string
}

const ConnectionPathSeparator = "://"

// ParseSourceConnectionURL splits a "type://path" string, for example "duckdb:///data/roads.parquet"
func ParseSourceConnectionURL(str string) (SourceConnectionURL, errorsx.Error) {
	idx := strings.Index(str, ConnectionPathSeparator)
	if idx < 0 {
		return SourceConnectionURL{}, errorsx.Errorf("couldn't find connection path separator %q in source connection URL", ConnectionPathSeparator)
	}

	return SourceConnectionURL{
		Type:           SourceType(str[:idx]),
		ConnectionPath: str[idx+len(ConnectionPathSeparator):],
	}, nil
}
