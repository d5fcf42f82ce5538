package parquetdb

import (
	"fmt"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/ownmapdal/ownmapsqldb"
	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb"
)

var duckDBExtensions = []string{"spatial", "parquet"}

// NewDuckDBFeatureSource queries a GeoParquet file (or a table in dbPath) through DuckDB.
// An empty dbPath gives an in-memory database.
func NewDuckDBFeatureSource(name, dbPath string, tableConfig ownmapsqldb.TableConfig) (*ownmapsqldb.SQLFeatureSource, errorsx.Error) {
	dbConn, err := sqlx.Open("duckdb", dbPath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	for _, extension := range duckDBExtensions {
		_, err = dbConn.Exec(fmt.Sprintf("INSTALL %s; LOAD %s;", extension, extension))
		if err != nil {
			dbConn.Close()
			return nil, errorsx.Wrap(err, "extension", extension)
		}
	}

	return ownmapsqldb.NewSQLFeatureSource(dbConn, name, ownmapsqldb.FlavourDuckDB, tableConfig), nil
}
