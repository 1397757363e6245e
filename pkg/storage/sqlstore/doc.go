// Package sqlstore implements the relational store over database/sql.
//
// Two drivers are supported: PostgreSQL (lib/pq) for production and SQLite
// (mattn/go-sqlite3) for single-node and local development. Queries use $N
// placeholders, which both drivers accept, and RETURNING for insert ids.
// SQLite connections are opened with case_sensitive_like so title search
// behaves the same under both drivers.
package sqlstore
