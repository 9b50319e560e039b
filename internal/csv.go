package internal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadRecords parses one CSV stream. The first row is the header and names
// the target table's columns, every remaining row becomes a Record. A file
// with no header row, or a row whose length disagrees with the header,
// returns ErrMalformedCSV.
func ReadRecords(r io.Reader) ([]string, []*Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: missing header row", ErrMalformedCSV)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	var records []*Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
			}
			return nil, nil, err
		}

		values := make([]any, len(row))
		for i, v := range row {
			values[i] = v
		}
		records = append(records, NewRecord(header, values))
	}

	return header, records, nil
}
