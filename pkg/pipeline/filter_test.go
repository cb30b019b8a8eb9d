package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citystreamlabs/silverpipe/pkg/schema"
)

// validRow returns a row passing every rule; callers override single cells.
func validRow() map[string]any {
	return map[string]any{
		schema.ColTripDurationSec:   120.0,
		schema.ColTripDurationMin:   2.0,
		schema.ColDistanceKM:        1.0,
		schema.ColWaitTimeCost:      0.5,
		schema.ColDistanceCost:      2.0,
		schema.ColFareWithFlag:      3.0,
		schema.ColTip:               0.0,
		schema.ColMiscellaneousFees: 0.0,
		schema.ColTotalFare:         5.0,
		schema.ColNumPassengers:     1.0,
		schema.ColSpeedKPH:          30.0,
	}
}

func allColumns() []string {
	return []string{
		schema.ColTripDurationSec, schema.ColTripDurationMin, schema.ColDistanceKM,
		schema.ColWaitTimeCost, schema.ColDistanceCost, schema.ColFareWithFlag,
		schema.ColTip, schema.ColMiscellaneousFees, schema.ColTotalFare,
		schema.ColNumPassengers, schema.ColSpeedKPH,
	}
}

func TestFilterDropsRuleViolations(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]any
		survives bool
	}{
		{"all valid", nil, true},
		{"zero duration sec", map[string]any{schema.ColTripDurationSec: 0.0}, false},
		{"negative duration min", map[string]any{schema.ColTripDurationMin: -1.0}, false},
		{"zero distance", map[string]any{schema.ColDistanceKM: 0.0}, false},
		{"negative fare", map[string]any{schema.ColFareWithFlag: -2.0}, false},
		{"negative tip", map[string]any{schema.ColTip: -0.01}, false},
		{"zero tip ok", map[string]any{schema.ColTip: 0.0}, true},
		{"zero passengers", map[string]any{schema.ColNumPassengers: 0.0}, false},
		{"zero speed", map[string]any{schema.ColSpeedKPH: 0.0}, false},
		{"speed over limit", map[string]any{schema.ColSpeedKPH: 160.1}, false},
		{"speed at limit", map[string]any{schema.ColSpeedKPH: 160.0}, true},
	}

	reg := schema.Default()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			row := validRow()
			for k, v := range test.override {
				row[k] = v
			}
			out := FilterRows(reg, makeTable(allColumns(), row))
			if test.survives {
				assert.Equal(t, 1, out.NumRecords())
			} else {
				assert.Equal(t, 0, out.NumRecords())
			}
		})
	}
}

func TestFilterMissingAsZero(t *testing.T) {
	reg := schema.Default()

	// Missing duration counts as zero and fails > 0.
	row := validRow()
	delete(row, schema.ColTripDurationSec)
	out := FilterRows(reg, makeTable(allColumns(), row))
	assert.Equal(t, 0, out.NumRecords())

	// Missing monetary value counts as zero and passes >= 0.
	row = validRow()
	delete(row, schema.ColTip)
	out = FilterRows(reg, makeTable(allColumns(), row))
	assert.Equal(t, 1, out.NumRecords())

	// Missing passengers fails >= 1, missing speed fails > 0.
	row = validRow()
	delete(row, schema.ColNumPassengers)
	out = FilterRows(reg, makeTable(allColumns(), row))
	assert.Equal(t, 0, out.NumRecords())

	row = validRow()
	delete(row, schema.ColSpeedKPH)
	out = FilterRows(reg, makeTable(allColumns(), row))
	assert.Equal(t, 0, out.NumRecords())
}

func TestFilterSkipsAbsentColumns(t *testing.T) {
	reg := schema.Default()

	// No speed column in the table: the speed rule must not fire even though
	// every record lacks a speed value.
	columns := []string{schema.ColTripDurationSec, schema.ColTotalFare}
	out := FilterRows(reg, makeTable(columns,
		map[string]any{schema.ColTripDurationSec: 120.0, schema.ColTotalFare: 5.0},
		map[string]any{schema.ColTripDurationSec: 60.0, schema.ColTotalFare: 7.5},
	))
	assert.Equal(t, 2, out.NumRecords())

	// A table with no registry columns filters nothing.
	out = FilterRows(reg, makeTable([]string{"pickup_zone"},
		map[string]any{"pickup_zone": "Midtown"},
	))
	assert.Equal(t, 1, out.NumRecords())
}

func TestFilterPreservesSurvivorOrder(t *testing.T) {
	reg := schema.Default()
	columns := []string{schema.ColTripDurationSec}
	out := FilterRows(reg, makeTable(columns,
		map[string]any{schema.ColTripDurationSec: 10.0},
		map[string]any{schema.ColTripDurationSec: 0.0},
		map[string]any{schema.ColTripDurationSec: 20.0},
		map[string]any{schema.ColTripDurationSec: 30.0},
	))

	require.Equal(t, 3, out.NumRecords())
	for i, want := range []float64{10, 20, 30} {
		got, ok := out.Records[i].Float(schema.ColTripDurationSec)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
