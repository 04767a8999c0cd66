package store

import "database/sql"

// DBProvider is implemented by database clients that expose a sql.DB handle.
// It lets PostgresClient and SupabaseClient back the same SQLStore.
type DBProvider interface {
	DB() *sql.DB
}
