package internal

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	// ErrPathNotFound indicates the configured source location does not exist.
	// It is fatal: the run aborts before any rows are loaded.
	ErrPathNotFound = errors.New("path not found")

	// ErrMalformedCSV indicates a single file could not be parsed. It is
	// recovered per file: the file is skipped and recorded in the catalog.
	ErrMalformedCSV = errors.New("malformed csv")
)

// File is one discovered CSV file: its path (or object key) within the
// source, and the database table it loads into.
type File struct {
	Path  string
	Table string
}

// TableName derives the target table from a file path: the base name with
// the extension stripped.
func TableName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Source enumerates and opens CSV files to import.
type Source interface {
	// Name describes the source location for logs and the run catalog.
	Name() string

	// List returns every .csv file at the source, sorted lexicographically
	// by name so runs are reproducible. An empty source returns an empty
	// slice. A missing source location returns ErrPathNotFound.
	List(ctx context.Context) ([]File, error)
	Open(ctx context.Context, f File) (io.ReadCloser, error)
}
