// Package driver provides the in-memory store driver implementation.
// This package implements database/sql/driver interfaces on top of a
// private modernc.org/sqlite in-memory database.
package driver
