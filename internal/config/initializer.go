package config

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/cgddrd/curator/internal"
	"github.com/cgddrd/curator/internal/importer"
	"github.com/cgddrd/curator/internal/local"
	"github.com/cgddrd/curator/internal/postgres"
	"github.com/cgddrd/curator/internal/s3"
)

// NewSource builds the configured file source. A bare target_path means a
// local folder source.
func NewSource(c *Curator, logger *zap.Logger) (internal.Source, error) {
	if c.Source == nil {
		return local.New(c.TargetPath, local.WithLogger(logger)), nil
	}

	switch c.Source.Type {
	case "local":
		return local.New(c.Source.LocalConfig.Path, local.WithLogger(logger)), nil
	case "s3":
		return s3.New(
			s3.WithLogger(logger),
			s3.WithRegion(c.Source.S3Config.Region),
			s3.WithBucket(c.Source.S3Config.Bucket),
			s3.WithPrefix(c.Source.S3Config.Prefix),
			s3.WithEndpoint(c.Source.S3Config.Endpoint),
			s3.WithForcePathStyle(c.Source.S3Config.ForcePathStyle),
		)
	default:
		return nil, fmt.Errorf("unknown source type: %s", c.Source.Type)
	}
}

// NewLoader dials the database and wraps the connection in a loader. The
// loader owns the connection and must be closed by the caller.
func NewLoader(ctx context.Context, c *Curator, logger *zap.Logger) (*postgres.Loader, error) {
	conn, err := pgx.Connect(ctx, c.Database.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return postgres.New(conn, postgres.WithLogger(logger)), nil
}

// NewImporter assembles the pipeline from an already discovered source and
// a dialed loader.
func NewImporter(source internal.Source, loader *postgres.Loader, logger *zap.Logger) *importer.Importer {
	return importer.New(
		importer.WithLogger(logger),
		importer.WithSource(source),
		importer.WithLoader(loader),
	)
}
