// Package storage persists cardinality analysis runs so cost trends can
// be compared over time. SQLite is the durable backend; an in-memory
// backend exists for tests and ephemeral use.
package storage
