package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/cgddrd/curator/internal"
)

type Option func(*Loader)

func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// Loader writes CSV row batches into Postgres tables. Tables are created on
// demand with every column typed TEXT, so arbitrary CSV content always fits.
// Existing tables are never altered or truncated: repeated runs append.
type Loader struct {
	Conn   *pgx.Conn
	logger *zap.Logger
}

func New(conn *pgx.Conn, opts ...Option) *Loader {
	l := &Loader{
		Conn:   conn,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Close(ctx context.Context) error {
	return l.Conn.Close(ctx)
}

// CreateTableDDL returns the CREATE TABLE IF NOT EXISTS statement for a CSV
// header. Identifiers are quoted, so file names with spaces or mixed case
// map to tables verbatim.
func CreateTableDDL(table string, columns []string) string {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = fmt.Sprintf("%s TEXT", pgx.Identifier{c}.Sanitize())
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(cols, ", "),
	)
}

// Load creates the table if it is missing and copies every record into it,
// all inside a single transaction. On any failure the transaction rolls
// back and the table is left untouched.
func (l *Loader) Load(ctx context.Context, table string, columns []string, records []*internal.Record) (int64, error) {
	tx, err := l.Conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	ddl := CreateTableDDL(table, columns)
	l.logger.Debug("ensuring table", zap.String("ddl", ddl))

	if _, err := tx.Exec(ctx, ddl); err != nil {
		return 0, fmt.Errorf("create table %q: %w", table, err)
	}

	count, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{table},
		columns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return records[i].Values(), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy into %q: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return count, nil
}
