// Package testdb provides helpers for PostgreSQL integration tests: a
// connection taken from GEOTASK_TEST_DATABASE_URL, a goose-migrated schema,
// and transactions that are always rolled back.
package testdb
