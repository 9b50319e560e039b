package importer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cgddrd/curator/internal"
	"github.com/cgddrd/curator/internal/catalog"
)

// Loader persists one parsed CSV file into its target table.
type Loader interface {
	Load(ctx context.Context, table string, columns []string, records []*internal.Record) (int64, error)
}

type Option func(*Importer)

func WithLogger(logger *zap.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

func WithSource(source internal.Source) Option {
	return func(i *Importer) {
		i.source = source
	}
}

func WithLoader(loader Loader) Option {
	return func(i *Importer) {
		i.loader = loader
	}
}

// Importer is the ingestion pipeline: it loads each discovered CSV file
// into a table named for the file. Files are processed one at a time, in
// discovery order.
type Importer struct {
	logger *zap.Logger
	source internal.Source
	loader Loader
}

func New(opts ...Option) *Importer {
	i := &Importer{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Discover lists the CSV files at the source. It is separate from Run so
// callers can fail on a missing source location before a database
// connection is ever attempted.
func (i *Importer) Discover(ctx context.Context) ([]internal.File, error) {
	return i.source.List(ctx)
}

// Run processes every file exactly once. A failure loading one file does
// not abort the run: the file is recorded in the catalog and the remaining
// files are still attempted.
func (i *Importer) Run(ctx context.Context, files []internal.File) *catalog.Catalog {
	runID := uuid.Must(uuid.NewUUID())

	c := catalog.New(runID, i.source.Name())
	defer func() {
		c.EndTime = time.Now().UTC()
	}()

	i.logger.Info("starting import run",
		zap.Stringer("run_id", runID),
		zap.String("source", i.source.Name()),
		zap.Int("files", len(files)),
	)

	for _, f := range files {
		rows, err := i.loadFile(ctx, f)
		if err != nil {
			i.logger.Error("failed to import file",
				zap.String("file", f.Path),
				zap.String("table", f.Table),
				zap.Error(err),
			)
			c.RecordFailure(f.Path, f.Table, err)
			continue
		}

		i.logger.Info("imported file",
			zap.String("file", f.Path),
			zap.String("table", f.Table),
			zap.Int64("rows", rows),
		)
		c.RecordSuccess(f.Path, f.Table, rows)
	}

	return c
}

func (i *Importer) loadFile(ctx context.Context, f internal.File) (int64, error) {
	r, err := i.source.Open(ctx, f)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	columns, records, err := internal.ReadRecords(r)
	if err != nil {
		return 0, err
	}

	return i.loader.Load(ctx, f.Table, columns, records)
}
