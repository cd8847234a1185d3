// Package postgres persists jsondb collections in PostgreSQL.
//
// Collections are rows of jsondb_collections and documents are rows of
// jsondb_documents with a jsonb body and an insertion position. Saving a
// collection replaces its documents in a single transaction. The tables are
// created with gorm's AutoMigrate when the backend starts.
//
// TranslateError maps gorm errors and PostgreSQL error codes onto the
// package sentinels, so callers can test for ErrDuplicateKey or
// ErrForeignKey with errors.Is.
package postgres
