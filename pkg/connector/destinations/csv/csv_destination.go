// Package csv provides the CSV table destination for silverpipe.
package csv

import (
	"context"
	enccsv "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/citystreamlabs/silverpipe/pkg/errors"
	"github.com/citystreamlabs/silverpipe/pkg/models"
)

// Destination writes a table to a CSV file, header first, preserving row
// order. An empty table still produces a header-only artifact.
type Destination struct {
	dir      string
	fileName string
	file     *os.File
	writer   *enccsv.Writer
}

// NewDestination creates a destination writing fileName inside dir.
func NewDestination(dir, fileName string) *Destination {
	return &Destination{dir: dir, fileName: fileName}
}

// Path returns the destination file path.
func (d *Destination) Path() string {
	return filepath.Join(d.dir, d.fileName)
}

// Initialize creates the output directory (with parents) and the file.
// An unwritable destination is fatal for the run.
func (d *Destination) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create output directory").
			WithDetail("dir", d.dir)
	}

	file, err := os.Create(d.Path())
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create output file").
			WithDetail("path", d.Path())
	}
	d.file = file
	d.writer = enccsv.NewWriter(file)
	return nil
}

// WriteTable writes the header derived from the table's final column names,
// then every record in order.
func (d *Destination) WriteTable(ctx context.Context, t *models.Table) error {
	if err := d.writer.Write(t.Columns); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write header")
	}

	row := make([]string, len(t.Columns))
	for _, rec := range t.Records {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for i, col := range t.Columns {
			v, ok := rec.Cell(col)
			if !ok {
				row[i] = ""
				continue
			}
			row[i] = cellToString(v)
		}
		if err := d.writer.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write row")
		}
	}

	d.writer.Flush()
	if err := d.writer.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush output")
	}
	return nil
}

// Close flushes and closes the underlying file.
func (d *Destination) Close() error {
	if d.writer != nil {
		d.writer.Flush()
	}
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// cellToString renders a typed cell for the wire. Missing cells are handled
// by the caller; nil only shows up for untyped passthrough values.
func cellToString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
