package postgres

import (
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// New opens a pool on the given DSN. The service runs two pools: one on the
// restricted role that row-level security applies to (public reads) and one
// on the privileged role that bypasses it (admin writes).
func New(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("pgx", dsn)
}
