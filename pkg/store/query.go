package store

import "context"

// Find executes query and scans zero or more rows into a slice of T via
// ClickHouse's struct-tag (`ch:"col"`) reflection binding. This is the
// columnar find() of the document store adapter contract.
func Find[T any](ctx context.Context, c *Client, query string, args ...interface{}) ([]T, error) {
	var rows []T
	if err := c.Select(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// FindOne executes query and returns its first row, or ok=false if it
// produced none. Callers are expected to LIMIT 1 themselves.
func FindOne[T any](ctx context.Context, c *Client, query string, args ...interface{}) (T, bool, error) {
	rows, err := Find[T](ctx, c, query, args...)
	if err != nil {
		var zero T
		return zero, false, err
	}
	if len(rows) == 0 {
		var zero T
		return zero, false, nil
	}
	return rows[0], true, nil
}

// CountDocuments returns the row count of table.
func CountDocuments(ctx context.Context, c *Client, table string) (uint64, error) {
	var n uint64
	row := c.QueryRow(ctx, "SELECT count() FROM "+table)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// StripID clears the internal document identifier of every element of docs
// via a caller-supplied setter. The columnar equivalent of the document
// store's stripId sanitizer: each entity descriptor supplies its own
// setter closure rather than relying on reflection over a common
// interface, since every entity's id field has a different Go type.
func StripID[T any](docs []T, clear func(*T)) []T {
	for i := range docs {
		clear(&docs[i])
	}
	return docs
}

// PromoteIDToMeta copies the internal document identifier to its public
// location and clears the internal field, via a caller-supplied setter.
// The columnar equivalent of promoteIdToMeta.
func PromoteIDToMeta[T any](docs []T, promote func(*T)) []T {
	for i := range docs {
		promote(&docs[i])
	}
	return docs
}
