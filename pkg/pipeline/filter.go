package pipeline

import (
	"github.com/citystreamlabs/silverpipe/pkg/models"
	"github.com/citystreamlabs/silverpipe/pkg/schema"
)

// FilterRows drops records violating the domain validity rules. Each rule
// applies only when its column exists in the table; a table without the
// column filters nothing for that rule. A missing cell counts as zero, so
// missing duration, distance, passengers, or speed fails the positive
// checks while a missing monetary value passes the non-negative check.
// Rules are conjunctive; survivor order matches input order.
func FilterRows(reg *schema.Registry, t *models.Table) *models.Table {
	rules := buildRules(reg, t)
	if len(rules) == 0 {
		return t.WithRecords(append([]*models.Record(nil), t.Records...))
	}

	records := make([]*models.Record, 0, len(t.Records))
	for _, rec := range t.Records {
		if rowValid(rec, rules) {
			records = append(records, rec)
		}
	}
	return t.WithRecords(records)
}

// rule is one per-column validity predicate over the missing-as-zero value.
type rule struct {
	column string
	valid  func(v float64) bool
}

// buildRules assembles the applicable rules for the table's column set.
// Cheap positivity checks come first; per-column monetary checks follow;
// the two-sided speed window comes last.
func buildRules(reg *schema.Registry, t *models.Table) []rule {
	rules := make([]rule, 0, 10)

	positive := func(v float64) bool { return v > 0 }
	for _, col := range []string{schema.ColTripDurationSec, schema.ColTripDurationMin, schema.ColDistanceKM} {
		if t.HasColumn(col) {
			rules = append(rules, rule{column: col, valid: positive})
		}
	}

	for _, col := range reg.MonetaryColumns {
		if t.HasColumn(col) {
			rules = append(rules, rule{column: col, valid: func(v float64) bool { return v >= 0 }})
		}
	}

	if t.HasColumn(schema.ColNumPassengers) {
		rules = append(rules, rule{
			column: schema.ColNumPassengers,
			valid:  func(v float64) bool { return v >= schema.MinPassengers },
		})
	}

	if t.HasColumn(schema.ColSpeedKPH) {
		rules = append(rules, rule{
			column: schema.ColSpeedKPH,
			valid:  func(v float64) bool { return v > 0 && v <= schema.MaxSpeedKPH },
		})
	}

	return rules
}

func rowValid(rec *models.Record, rules []rule) bool {
	for _, ru := range rules {
		v, ok := rec.Float(ru.column)
		if !ok {
			v = 0 // missing-as-zero sentinel
		}
		if !ru.valid(v) {
			return false
		}
	}
	return true
}
