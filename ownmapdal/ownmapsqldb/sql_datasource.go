package ownmapsqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/ownmapdal"
	"github.com/jamesrr39/ownmap-gis/predicate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/paulmach/orb/geojson"
)

var _ ownmapdal.FeatureSource = &SQLFeatureSource{}

// Flavour is the SQL engine behind a source. It changes how the table is read and how geometries are encoded.
type Flavour string

const (
	FlavourPostgres Flavour = "postgres"
	FlavourDuckDB   Flavour = "duckdb"
)

const (
	geoJSONColumnAlias = "__ownmap_geojson"
	wgs84SRID          = 4326
)

type TableConfig struct {
	// Table is a (optionally schema-qualified) table name, or for DuckDB a path to a parquet file
	Table          string
	GeometryColumn string
	IDColumn       string
}

type SQLFeatureSource struct {
	name        string
	db          *sqlx.DB
	flavour     Flavour
	tableConfig TableConfig
}

func NewSQLFeatureSource(db *sqlx.DB, name string, flavour Flavour, tableConfig TableConfig) *SQLFeatureSource {
	return &SQLFeatureSource{
		name:        name,
		db:          db,
		flavour:     flavour,
		tableConfig: tableConfig,
	}
}

func (s *SQLFeatureSource) Name() string {
	return s.name
}

func (s *SQLFeatureSource) Close() errorsx.Error {
	err := s.db.Close()
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

func (s *SQLFeatureSource) isParquetTable() bool {
	return s.flavour == FlavourDuckDB && strings.HasSuffix(strings.ToLower(s.tableConfig.Table), ".parquet")
}

func (s *SQLFeatureSource) tableExpression() string {
	if s.isParquetTable() {
		return fmt.Sprintf("read_parquet(%s)", pq.QuoteLiteral(s.tableConfig.Table))
	}

	var parts []string
	for _, part := range strings.Split(s.tableConfig.Table, ".") {
		parts = append(parts, pq.QuoteIdentifier(part))
	}
	return strings.Join(parts, ".")
}

func (s *SQLFeatureSource) geometryExpression() string {
	column := pq.QuoteIdentifier(s.tableConfig.GeometryColumn)
	if s.isParquetTable() {
		// GeoParquet stores geometries as WKB
		return fmt.Sprintf("ST_GeomFromWKB(%s)", column)
	}
	return column
}

func (s *SQLFeatureSource) envelopeExpression() string {
	switch s.flavour {
	case FlavourDuckDB:
		return "ST_MakeEnvelope($1, $2, $3, $4)"
	default:
		return fmt.Sprintf("ST_MakeEnvelope($1, $2, $3, $4, %d)", wgs84SRID)
	}
}

// BuildQuery renders a feature query as SQL. Predicates are rendered inline in the SQL dialect,
// the bound is passed as the arguments $1 to $4 (min lon, min lat, max lon, max lat).
func (s *SQLFeatureSource) BuildQuery(query *ownmapdal.FeatureQuery) (string, []interface{}, errorsx.Error) {
	var whereClauses []string
	var args []interface{}

	if len(query.Predicates) != 0 {
		folded := predicate.Fold(query.Predicates, predicate.And)
		filter, err := folded.ToString(predicate.DialectSQL)
		if err != nil {
			return "", nil, errorsx.Wrap(err)
		}
		whereClauses = append(whereClauses, filter)
	}

	if query.Bound != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ST_Intersects(%s, %s)", s.geometryExpression(), s.envelopeExpression()))
		args = append(args, query.Bound.Min.Lon(), query.Bound.Min.Lat(), query.Bound.Max.Lon(), query.Bound.Max.Lat())
	}

	sb := new(strings.Builder)
	fmt.Fprintf(sb, "SELECT *, CAST(ST_AsGeoJSON(%s) AS VARCHAR) AS %s FROM %s",
		s.geometryExpression(), geoJSONColumnAlias, s.tableExpression())

	if len(whereClauses) != 0 {
		fmt.Fprintf(sb, " WHERE %s", strings.Join(whereClauses, " AND "))
	}

	if query.Limit > 0 {
		fmt.Fprintf(sb, " LIMIT %d", query.Limit)
	}

	return sb.String(), args, nil
}

func (s *SQLFeatureSource) QueryFeatures(ctx context.Context, query *ownmapdal.FeatureQuery) (*geojson.FeatureCollection, errorsx.Error) {
	var err error

	sqlQuery, args, err := s.BuildQuery(query)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	rows, err := s.db.QueryxContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errorsx.Wrap(err, "query", sqlQuery)
	}
	defer rows.Close()

	collection := geojson.NewFeatureCollection()
	for rows.Next() {
		row := make(map[string]interface{})
		err = rows.MapScan(row)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}

		feature, err := s.featureFromRow(row)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}

		collection.Append(feature)
	}

	err = rows.Err()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return collection, nil
}

// featureFromRow turns a scanned row into a GeoJSON feature. The id column becomes the feature ID,
// the geometry columns are dropped and every other column becomes a property.
func (s *SQLFeatureSource) featureFromRow(row map[string]interface{}) (*geojson.Feature, errorsx.Error) {
	geoJSONValue, ok := row[geoJSONColumnAlias]
	if !ok {
		return nil, errorsx.Errorf("row is missing the %q column", geoJSONColumnAlias)
	}

	var geometryBytes []byte
	switch val := geoJSONValue.(type) {
	case string:
		geometryBytes = []byte(val)
	case []byte:
		geometryBytes = val
	case nil:
		return nil, errorsx.Errorf("feature has no geometry")
	default:
		return nil, errorsx.Errorf("unexpected type for GeoJSON geometry: %T", geoJSONValue)
	}

	geometry, err := geojson.UnmarshalGeometry(geometryBytes)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	feature := geojson.NewFeature(geometry.Geometry())
	for key, value := range row {
		switch key {
		case geoJSONColumnAlias, s.tableConfig.GeometryColumn:
			continue
		case s.tableConfig.IDColumn:
			feature.ID = normaliseColumnValue(value)
			continue
		}

		feature.Properties[key] = normaliseColumnValue(value)
	}

	return feature, nil
}

func normaliseColumnValue(value interface{}) interface{} {
	switch val := value.(type) {
	case []byte:
		return string(val)
	default:
		return val
	}
}
