// Package report defines the run summary the pipeline core produces. The
// core only fills the Summary; rendering (text block or JSON) is up to the
// caller.
package report

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Summary describes one pipeline run.
type Summary struct {
	// InputRows is the raw row count before any stage ran.
	InputRows int `json:"input_rows"`
	// OutputRows is the row count after filtering and dedup.
	OutputRows int `json:"output_rows"`
	// DuplicatesRemoved counts rows dropped by the deduplicator.
	DuplicatesRemoved int `json:"duplicates_removed"`
	// KeyColumns lists the composite-key columns the deduplicator used.
	KeyColumns []string `json:"key_columns"`
	// ColumnsIn lists the raw input column names.
	ColumnsIn []string `json:"columns_in"`
	// ColumnsOut lists the final output column names.
	ColumnsOut []string `json:"columns_out"`
	// OutputPath is the location of the written artifact.
	OutputPath string `json:"output_path"`
}

// String renders the human-readable summary block.
func (s *Summary) String() string {
	var b strings.Builder
	b.WriteString("=== SILVER SUMMARY ===\n")
	fmt.Fprintf(&b, "Input rows:                 %d\n", s.InputRows)
	fmt.Fprintf(&b, "After cleaning & de-dupe:   %d\n", s.OutputRows)
	fmt.Fprintf(&b, "Duplicates removed (key):   %d\n", s.DuplicatesRemoved)
	fmt.Fprintf(&b, "Composite key used:         %v\n", s.KeyColumns)
	fmt.Fprintf(&b, "Columns in:                 %v\n", s.ColumnsIn)
	fmt.Fprintf(&b, "Columns out:                %v\n", s.ColumnsOut)
	fmt.Fprintf(&b, "Output file:                %s", s.OutputPath)
	return b.String()
}

// JSON serializes the summary for machine consumers.
func (s *Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
