package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cgddrd/curator/internal"
)

type Option func(*Source)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// Source reads CSV files from a local folder. The folder is never written
// to, source files are never removed.
type Source struct {
	path   string
	logger *zap.Logger
}

func New(path string, opts ...Option) *Source {
	s := &Source{
		path:   path,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string {
	return fmt.Sprintf("local:%s", s.path)
}

// List returns the .csv files in the folder, non-recursive, sorted by name.
func (s *Source) List(ctx context.Context) ([]internal.File, error) {
	entries, err := os.ReadDir(s.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", internal.ErrPathNotFound, s.path)
	}
	if err != nil {
		return nil, err
	}

	var files []internal.File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		files = append(files, internal.File{
			Path:  entry.Name(),
			Table: internal.TableName(entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	s.logger.Debug("listed source folder",
		zap.String("path", s.path),
		zap.Int("files", len(files)),
	)

	return files, nil
}

func (s *Source) Open(ctx context.Context, f internal.File) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.path, f.Path))
}
