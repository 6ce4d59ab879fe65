// Package store persists users, recordings, and run results with GORM.
// SQLite is the default driver; the DSN decides the database location.
package store
