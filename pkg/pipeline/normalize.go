package pipeline

import (
	"strings"

	"github.com/citystreamlabs/silverpipe/pkg/models"
)

// NormalizeColumns canonicalizes every column name: trims surrounding
// whitespace, lowercases, and replaces internal spaces and hyphens with
// underscores. Row content is untouched; cells are re-keyed under the new
// names. Idempotent — a table with canonical names passes through unchanged.
func NormalizeColumns(t *models.Table) *models.Table {
	columns := make([]string, len(t.Columns))
	renamed := false
	for i, c := range t.Columns {
		columns[i] = CanonicalName(c)
		if columns[i] != c {
			renamed = true
		}
	}

	if !renamed {
		return t.WithColumns(columns)
	}

	records := make([]*models.Record, 0, len(t.Records))
	for _, rec := range t.Records {
		out := models.NewRecord()
		for i, c := range t.Columns {
			if v, ok := rec.Cell(c); ok {
				out.SetCell(columns[i], v)
			}
		}
		records = append(records, out)
	}

	return &models.Table{Columns: columns, Records: records}
}

// CanonicalName returns the normalized form of a single column name.
func CanonicalName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
