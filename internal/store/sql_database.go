package store

import (
	"database/sql"

	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/migrations"
)

// DB wraps the raw database handle together with the driver-specific error
// classifier repositories use to tell transient failures from permanent ones.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded goose migrations, bringing the local
// verification history schema up to date. Safe to call on every start.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
