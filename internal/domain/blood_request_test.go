package domain

import "testing"

func TestRequestUrgencyRankOrdersHighFirst(t *testing.T) {
	if UrgencyHigh.Rank() <= UrgencyMedium.Rank() {
		t.Fatalf("high (%d) must outrank medium (%d)", UrgencyHigh.Rank(), UrgencyMedium.Rank())
	}
	if UrgencyMedium.Rank() <= UrgencyLow.Rank() {
		t.Fatalf("medium (%d) must outrank low (%d)", UrgencyMedium.Rank(), UrgencyLow.Rank())
	}
	if unknown := RequestUrgency("critical").Rank(); unknown != UrgencyLow.Rank() {
		t.Fatalf("unknown urgency should rank lowest, got %d", unknown)
	}
}
