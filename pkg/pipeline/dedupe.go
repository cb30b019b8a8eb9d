package pipeline

import (
	"strconv"
	"strings"

	"github.com/citystreamlabs/silverpipe/pkg/models"
	"github.com/citystreamlabs/silverpipe/pkg/schema"
)

// DedupeResult reports what Deduplicate did.
type DedupeResult struct {
	// Removed is the number of later duplicate rows dropped.
	Removed int
	// KeyColumns lists the composite-key columns actually used, in the
	// registry's priority order. Empty when the table carries none of them.
	KeyColumns []string
}

// Deduplicate removes rows that match an earlier row on every composite-key
// column present in the table. Missing equals missing for key comparison.
// The first occurrence, by input order, is retained. When the table has no
// key columns at all every row is considered unique and the table passes
// through with Removed == 0.
func Deduplicate(reg *schema.Registry, t *models.Table) (*models.Table, DedupeResult) {
	key := make([]string, 0, len(reg.CompositeKey))
	for _, col := range reg.CompositeKey {
		if t.HasColumn(col) {
			key = append(key, col)
		}
	}

	result := DedupeResult{KeyColumns: key}
	if len(key) == 0 {
		return t.WithRecords(append([]*models.Record(nil), t.Records...)), result
	}

	seen := make(map[string]struct{}, len(t.Records))
	records := make([]*models.Record, 0, len(t.Records))
	for _, rec := range t.Records {
		k := keyOf(rec, key)
		if _, dup := seen[k]; dup {
			result.Removed++
			continue
		}
		seen[k] = struct{}{}
		records = append(records, rec)
	}

	return t.WithRecords(records), result
}

// keyOf encodes a record's projection onto the key columns. Values are
// tagged by type so e.g. the string "1" and the number 1 never collide, and
// a missing cell gets its own tag so missing matches missing.
func keyOf(rec *models.Record, key []string) string {
	var b strings.Builder
	for i, col := range key {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		v, ok := rec.Cell(col)
		if !ok {
			b.WriteString("_")
			continue
		}
		switch x := v.(type) {
		case float64:
			if x == 0 {
				x = 0 // fold negative zero, -0.0 == 0.0 for key equality
			}
			b.WriteString("f")
			b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		case bool:
			b.WriteString("b")
			b.WriteString(strconv.FormatBool(x))
		case string:
			b.WriteString("s")
			b.WriteString(x)
		default:
			b.WriteString("?")
		}
	}
	return b.String()
}
