package schema

import "testing"

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	if len(reg.NumericColumns) != 12 {
		t.Errorf("expected 12 numeric columns, got %d", len(reg.NumericColumns))
	}
	if len(reg.MonetaryColumns) != 6 {
		t.Errorf("expected 6 monetary columns, got %d", len(reg.MonetaryColumns))
	}

	// Dedup key priority order is part of the contract.
	expectedKey := []string{
		ColTripDurationSec, ColDistanceKM, ColTotalFare,
		ColNumPassengers, ColTip, ColSurgeApplied,
	}
	if len(reg.CompositeKey) != len(expectedKey) {
		t.Fatalf("expected %d key columns, got %d", len(expectedKey), len(reg.CompositeKey))
	}
	for i, col := range expectedKey {
		if reg.CompositeKey[i] != col {
			t.Errorf("key[%d] = %s, expected %s", i, reg.CompositeKey[i], col)
		}
	}
}

func TestMembership(t *testing.T) {
	reg := Default()

	if !reg.IsNumeric(ColTip) {
		t.Error("tip should be numeric")
	}
	if !reg.IsMonetary(ColTip) {
		t.Error("tip should be monetary")
	}
	if reg.IsMonetary(ColSpeedKPH) {
		t.Error("kph is not monetary")
	}
	if reg.IsNumeric(ColSurgeApplied) {
		t.Error("surge_applied is not numeric")
	}
}
