// Package csv provides the CSV table source for silverpipe. The whole file
// is materialized into one in-memory table; this is a batch pipeline with no
// streaming or chunked reads.
package csv

import (
	"context"
	enccsv "encoding/csv"
	"io"
	"os"

	"github.com/citystreamlabs/silverpipe/pkg/errors"
	"github.com/citystreamlabs/silverpipe/pkg/models"
)

// Source reads a delimited file into a Table. Every cell is delivered as a
// raw string; typing is the pipeline's job, not the reader's.
type Source struct {
	path   string
	file   *os.File
	reader *enccsv.Reader
}

// NewSource creates a source for the given file path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Open opens the underlying file. An unreadable input is fatal for the run.
func (s *Source) Open(ctx context.Context) error {
	file, err := os.Open(s.path)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to open input file").
			WithDetail("path", s.path)
	}
	s.file = file

	s.reader = enccsv.NewReader(file)
	// Raw taxi exports have ragged rows; header length governs the table.
	s.reader.FieldsPerRecord = -1
	return nil
}

// ReadTable reads the header and all rows into a table. The header row
// supplies the raw column names in file order. A row shorter than the header
// leaves its trailing cells missing; a longer row has its extras dropped.
func (s *Source) ReadTable(ctx context.Context) (*models.Table, error) {
	header, err := s.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrorTypeFile, "input file has no header row").
				WithDetail("path", s.path)
		}
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read header")
	}
	if len(header) == 0 {
		return nil, errors.New(errors.ErrorTypeFile, "input file has no columns").
			WithDetail("path", s.path)
	}

	table := models.NewTable(header)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := s.reader.Read()
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read row").
				WithDetail("path", s.path)
		}

		rec := models.NewRecord()
		for i, name := range header {
			if i < len(row) {
				rec.SetCell(name, row[i])
			}
		}
		table.AppendRecord(rec)
	}
}

// Close closes the underlying file.
func (s *Source) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
