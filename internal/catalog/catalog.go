package catalog

import (
	"time"

	"github.com/google/uuid"
)

/*
The catalog is a record of what a run did. It is a primitive for verifying,
inventorying and auditing imports: which files loaded, how many rows each
contributed, and which files were skipped and why.
*/

// FileResult is the outcome of loading one CSV file.
type FileResult struct {
	File  string `json:"file"`
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
	Error string `json:"error,omitempty"`
}

// Catalog represents one import run.
type Catalog struct {
	RunID     uuid.UUID    `json:"run_id"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Source    string       `json:"source"`
	Files     []FileResult `json:"files"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

func New(runID uuid.UUID, source string) *Catalog {
	return &Catalog{
		RunID:     runID,
		StartTime: time.Now().UTC(),
		Source:    source,
	}
}

func (c *Catalog) RecordSuccess(file, table string, rows int64) {
	c.Files = append(c.Files, FileResult{File: file, Table: table, Rows: rows})
	c.Succeeded++
}

func (c *Catalog) RecordFailure(file, table string, err error) {
	c.Files = append(c.Files, FileResult{File: file, Table: table, Error: err.Error()})
	c.Failed++
}

// Success reports whether the run as a whole succeeded: every discovered
// file loaded. An empty run is a success.
func (c *Catalog) Success() bool {
	return c.Failed == 0
}
