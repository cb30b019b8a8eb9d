package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/citystreamlabs/silverpipe/pkg/models"
	"github.com/citystreamlabs/silverpipe/pkg/schema"
)

// CoerceTypes converts the registry's numeric columns to float64 and the
// boolean column to bool, for columns actually present in the table. Numeric
// parsing is best-effort: an unparseable cell becomes missing, never an
// error and never a dropped row. Columns outside the registry pass through
// untouched.
func CoerceTypes(reg *schema.Registry, t *models.Table) *models.Table {
	records := make([]*models.Record, 0, len(t.Records))
	hasBool := t.HasColumn(reg.BooleanColumn)

	for _, rec := range t.Records {
		out := rec.Clone()
		for _, col := range reg.NumericColumns {
			if !t.HasColumn(col) {
				continue
			}
			v, ok := out.Cell(col)
			if !ok {
				continue
			}
			if f, ok := coerceNumeric(v); ok {
				out.SetCell(col, f)
			} else {
				out.ClearCell(col)
			}
		}
		if hasBool {
			out.SetCell(reg.BooleanColumn, coerceBool(out, reg.BooleanColumn))
		}
		records = append(records, out)
	}

	return t.WithRecords(records)
}

// coerceNumeric parses a cell into a float64. Booleans map to 1/0 so that a
// pre-typed flag column run through numeric coercion behaves like its
// textual "1"/"0" form. NaN is the missing marker's float spelling, not a
// number: a "NaN" string (the usual rendering of missing cells in CSV
// exports) or a pre-typed NaN value coerces to missing, never to a NaN cell
// that would then fail every comparison in the validator.
func coerceNumeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case float32:
		if math.IsNaN(float64(x)) {
			return 0, false
		}
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// coerceBool coerces the flag cell of one record. Textual values map
// "true"/"1" to true and "false"/"0" to false after trimming and
// lowercasing; anything else, including a missing cell, defaults to false.
// The false default for unrecognized strings is deliberate and asymmetric
// with numeric coercion (which yields missing, not zero).
// Non-textual values coerce by truthiness: zero-equivalent is false.
func coerceBool(rec *models.Record, column string) bool {
	v, ok := rec.Cell(column)
	if !ok {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1":
			return true
		default:
			return false
		}
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return false
	}
}
