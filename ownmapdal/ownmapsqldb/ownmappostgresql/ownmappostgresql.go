package ownmappostgresql

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/ownmapdal/ownmapsqldb"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// NewFeatureSource opens a PostGIS table. connStr is the part of a postgresql:// URL after the scheme.
func NewFeatureSource(name, connStr string, tableConfig ownmapsqldb.TableConfig) (*ownmapsqldb.SQLFeatureSource, errorsx.Error) {
	db, err := sqlx.Open("postgres", "postgresql://"+connStr)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return ownmapsqldb.NewSQLFeatureSource(db, name, ownmapsqldb.FlavourPostgres, tableConfig), nil
}
