// Package schema defines the fixed column registry for the taxi trip
// dataset. The registry is static configuration: it is built once and passed
// explicitly into every pipeline stage, never mutated at runtime.
package schema

// Canonical column names after normalization.
const (
	ColTripDurationSec   = "trip_duration_sec"
	ColTripDurationMin   = "trip_duration_min"
	ColTripDurationHr    = "trip_duration_hr"
	ColDistanceKM        = "distance_traveled_km"
	ColSpeedKPH          = "kph"
	ColWaitTimeCost      = "wait_time_cost"
	ColDistanceCost      = "distance_cost"
	ColFareWithFlag      = "fare_w_flag"
	ColTip               = "tip"
	ColMiscellaneousFees = "miscellaneous_fees"
	ColTotalFare         = "total_fare_new"
	ColNumPassengers     = "num_of_passengers"
	ColSurgeApplied      = "surge_applied"
)

// Validity thresholds. These are design constants, not runtime configuration.
const (
	// MaxSpeedKPH is the upper bound of the speed sanity window (0, 160].
	MaxSpeedKPH = 160.0
	// MinPassengers is the minimum acceptable passenger count.
	MinPassengers = 1.0
)

// Registry carries the fixed, closed column sets the pipeline operates on.
type Registry struct {
	// NumericColumns are coerced to float64 when present.
	NumericColumns []string
	// MonetaryColumns is the subset of NumericColumns that must be >= 0.
	MonetaryColumns []string
	// CompositeKey lists dedup key columns in fixed priority order.
	CompositeKey []string
	// BooleanColumn is coerced to bool when present.
	BooleanColumn string
}

// Default returns the registry for the taxi trip dataset.
func Default() *Registry {
	return &Registry{
		NumericColumns: []string{
			ColTripDurationSec, ColTripDurationMin, ColTripDurationHr,
			ColDistanceKM, ColSpeedKPH,
			ColWaitTimeCost, ColDistanceCost, ColFareWithFlag,
			ColTip, ColMiscellaneousFees, ColTotalFare,
			ColNumPassengers,
		},
		MonetaryColumns: []string{
			ColWaitTimeCost, ColDistanceCost, ColFareWithFlag,
			ColTip, ColMiscellaneousFees, ColTotalFare,
		},
		CompositeKey: []string{
			ColTripDurationSec,
			ColDistanceKM,
			ColTotalFare,
			ColNumPassengers,
			ColTip,
			ColSurgeApplied,
		},
		BooleanColumn: ColSurgeApplied,
	}
}

// IsNumeric reports whether the column belongs to the numeric set.
func (r *Registry) IsNumeric(column string) bool {
	return contains(r.NumericColumns, column)
}

// IsMonetary reports whether the column belongs to the monetary subset.
func (r *Registry) IsMonetary(column string) bool {
	return contains(r.MonetaryColumns, column)
}

func contains(set []string, name string) bool {
	for _, c := range set {
		if c == name {
			return true
		}
	}
	return false
}
