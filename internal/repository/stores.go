package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fhuszti/medias-metadata-go/internal/db"
	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/repository/mariadb"
	"github.com/fhuszti/medias-metadata-go/internal/repository/sqlite"
)

// Stores groups the relation and metadata stores backed by the same database.
type Stores struct {
	Relations port.RelationRepository
	Metadata  port.MetadataRepository
}

// NewStores builds the stores for driver. The SQLite schema is created on the fly;
// MariaDB relies on the migrations having been applied.
func NewStores(ctx context.Context, driver string, conn *sql.DB) (Stores, error) {
	switch driver {
	case db.DriverMariaDB:
		return Stores{
			Relations: mariadb.NewRelationRepository(conn),
			Metadata:  mariadb.NewMetadataRepository(conn),
		}, nil
	case db.DriverSQLite:
		if err := sqlite.ApplySchema(ctx, conn); err != nil {
			return Stores{}, err
		}
		return Stores{
			Relations: sqlite.NewRelationRepository(conn),
			Metadata:  sqlite.NewMetadataRepository(conn),
		}, nil
	default:
		return Stores{}, fmt.Errorf("unknown store driver %q", driver)
	}
}
