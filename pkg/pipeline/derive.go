package pipeline

import (
	"math"

	"github.com/citystreamlabs/silverpipe/pkg/models"
	"github.com/citystreamlabs/silverpipe/pkg/schema"
)

// RecomputeDuration repopulates trip_duration_hr from the most authoritative
// duration source so independently-stored fields cannot drift. When the
// minutes column is absent but seconds exist, a minutes column is derived
// first (seconds / 60). Hours are then recomputed from minutes, or from
// seconds when only seconds exist, rounded to 6 decimal places. Any
// pre-existing hours value is overwritten, never trusted. A row whose source
// cell is missing gets a missing hours cell. Tables with neither source
// column pass through unchanged.
//
// Rounding is half-away-from-zero (math.Round), which is the pinned choice
// for this pipeline.
func RecomputeDuration(t *models.Table) *models.Table {
	hasSec := t.HasColumn(schema.ColTripDurationSec)
	hasMin := t.HasColumn(schema.ColTripDurationMin)

	if !hasSec && !hasMin {
		return t.WithRecords(t.Records)
	}

	deriveMinutes := !hasMin && hasSec
	minutesAvailable := hasMin || deriveMinutes

	columns := append([]string(nil), t.Columns...)
	if deriveMinutes {
		columns = append(columns, schema.ColTripDurationMin)
	}
	if !containsColumn(columns, schema.ColTripDurationHr) {
		columns = append(columns, schema.ColTripDurationHr)
	}

	records := make([]*models.Record, 0, len(t.Records))
	for _, rec := range t.Records {
		out := rec.Clone()

		if deriveMinutes {
			if sec, ok := out.Float(schema.ColTripDurationSec); ok {
				out.SetCell(schema.ColTripDurationMin, sec/60.0)
			}
		}

		switch {
		case minutesAvailable:
			if min, ok := out.Float(schema.ColTripDurationMin); ok {
				out.SetCell(schema.ColTripDurationHr, round6(min/60.0))
			} else {
				out.ClearCell(schema.ColTripDurationHr)
			}
		default: // seconds only
			if sec, ok := out.Float(schema.ColTripDurationSec); ok {
				out.SetCell(schema.ColTripDurationHr, round6(sec/3600.0))
			} else {
				out.ClearCell(schema.ColTripDurationHr)
			}
		}

		records = append(records, out)
	}

	return &models.Table{Columns: columns, Records: records}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
