// Package sqlite provides the read-only chapter store backed by the hadith
// SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, with github.com/jmoiron/sqlx for query mapping. It reads two tables:
//
//   - collections: id, name, author
//   - chapters: id, collection_id, english_name
//
// The database is opened with mode=ro; nothing in the service writes to it.
//
// # Thread Safety
//
// All operations are safe for concurrent use through the database/sql pool.
package sqlite
