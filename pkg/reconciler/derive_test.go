package reconciler

import (
	"math"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestDistanceBetweenSymmetric(t *testing.T) {
	a := DistanceBetween(54.687, 25.279, 52.520, 13.405)
	b := DistanceBetween(52.520, 13.405, 54.687, 25.279)

	if a != b {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
	if a <= 0 {
		t.Errorf("expected positive distance, got %f", a)
	}
}

func TestDistanceBetweenZeroForSamePoint(t *testing.T) {
	d := DistanceBetween(54.687, 25.279, 54.687, 25.279)
	if d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
}

func TestDistanceBetweenRoadFactor(t *testing.T) {
	// Vilnius to Kaunas is roughly 92km great circle, so ~105km with the
	// 15% road factor applied
	d := DistanceBetween(54.6872, 25.2797, 54.8985, 23.9036)
	if d < 100 || d > 115 {
		t.Errorf("expected ~105km, got %f", d)
	}

	// Rounded to two decimal places
	if math.Round(d*100)/100 != d {
		t.Errorf("expected two decimal places, got %f", d)
	}
}

func TestCalculateETAMoving(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	eta := CalculateETA(now, 160, floatPtr(80))
	if eta == nil {
		t.Fatal("expected an ETA")
	}

	expected := now.Add(2 * time.Hour)
	if eta.Sub(expected).Abs() > time.Second {
		t.Errorf("expected %v, got %v", expected, *eta)
	}
}

func TestCalculateETAStationaryFallback(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// speed 0 and 120km out uses the 60km/h fallback
	eta := CalculateETA(now, 120, floatPtr(0))
	if eta == nil {
		t.Fatal("expected an ETA")
	}

	expected := now.Add(2 * time.Hour)
	if eta.Sub(expected).Abs() > time.Second {
		t.Errorf("expected %v, got %v", expected, *eta)
	}
}

func TestCalculateETACrawlingUsesFallback(t *testing.T) {
	now := time.Now()

	// 10km/h is not above the moving threshold
	eta := CalculateETA(now, 60, floatPtr(10))
	if eta == nil {
		t.Fatal("expected an ETA")
	}

	expected := now.UTC().Add(time.Hour)
	if eta.Sub(expected).Abs() > time.Second {
		t.Errorf("expected fallback speed ETA %v, got %v", expected, *eta)
	}
}

func TestCalculateETANoDistance(t *testing.T) {
	if eta := CalculateETA(time.Now(), 0, floatPtr(0)); eta != nil {
		t.Errorf("expected no ETA for a stationary vehicle at its task, got %v", *eta)
	}
}

func TestFormatDrivingTime(t *testing.T) {
	tests := []struct {
		seconds  *int
		expected string
	}{
		{intPtr(5400), "1:30"},
		{intPtr(0), "0:00"},
		{nil, "0:00"},
		{intPtr(-60), "0:00"},
		{intPtr(3600), "1:00"},
		{intPtr(36000), "10:00"},
		{intPtr(59), "0:00"},
		{intPtr(3660), "1:01"},
	}

	for _, test := range tests {
		if formatted := FormatDrivingTime(test.seconds); formatted != test.expected {
			t.Errorf("FormatDrivingTime(%v) = %q, want %q", test.seconds, formatted, test.expected)
		}
	}
}

func TestViolationCount(t *testing.T) {
	if count := ViolationCount(2, 3); count != 5 {
		t.Errorf("expected 5, got %d", count)
	}
	if count := ViolationCount(0, 0); count != 0 {
		t.Errorf("expected 0, got %d", count)
	}
	if count := ViolationCount(-2, 1); count != 0 {
		t.Errorf("expected clamping to 0, got %d", count)
	}
}

func TestCalculateUtilizationExplicit(t *testing.T) {
	utilization := CalculateUtilization(floatPtr(75), nil, time.Now())
	if utilization == nil || *utilization != 0.75 {
		t.Fatalf("expected 0.75, got %v", utilization)
	}
}

func TestCalculateUtilizationFromWorkStart(t *testing.T) {
	now := time.Now()
	start := now.Add(-4 * time.Hour).UnixMilli()

	utilization := CalculateUtilization(nil, &start, now)
	if utilization == nil {
		t.Fatal("expected a utilization")
	}
	if math.Abs(*utilization-0.5) > 0.01 {
		t.Errorf("expected ~0.5 after 4h of an 8h day, got %f", *utilization)
	}
}

func TestCalculateUtilizationCapped(t *testing.T) {
	now := time.Now()
	start := now.Add(-12 * time.Hour).UnixMilli()

	utilization := CalculateUtilization(nil, &start, now)
	if utilization == nil || *utilization != 1.0 {
		t.Fatalf("expected cap at 1.0, got %v", utilization)
	}
}

func TestCalculateUtilizationAbsent(t *testing.T) {
	if utilization := CalculateUtilization(nil, nil, time.Now()); utilization != nil {
		t.Errorf("expected nil, got %f", *utilization)
	}
}

func TestCalculateDelayMinutes(t *testing.T) {
	planned := int64(1700000000000)

	actual := planned + 900000 // 15 minutes late
	delay := CalculateDelayMinutes(nil, &planned, &actual)
	if delay == nil || *delay != 15 {
		t.Fatalf("expected 15 minute delay, got %v", delay)
	}

	early := planned - 900000 // 15 minutes early is not a delay
	if delay := CalculateDelayMinutes(nil, &planned, &early); delay != nil {
		t.Errorf("expected no delay for early arrival, got %d", *delay)
	}

	explicit := 7
	delay = CalculateDelayMinutes(&explicit, &planned, &actual)
	if delay == nil || *delay != 7 {
		t.Fatalf("expected explicit delay to win, got %v", delay)
	}

	if delay := CalculateDelayMinutes(nil, &planned, nil); delay != nil {
		t.Errorf("expected nil without an actual arrival, got %d", *delay)
	}
}

func TestFuelQuantity(t *testing.T) {
	if litres := FuelQuantity(50, floatPtr(800), DefaultTankCapacityLitres); litres != 400 {
		t.Errorf("expected 400l, got %f", litres)
	}

	// No capacity from the API falls back to the configured default
	if litres := FuelQuantity(25, nil, DefaultTankCapacityLitres); litres != 100 {
		t.Errorf("expected 100l, got %f", litres)
	}

	if litres := FuelQuantity(25, nil, 600); litres != 150 {
		t.Errorf("expected 150l with a 600l default, got %f", litres)
	}
}

func TestClassifyGroup(t *testing.T) {
	if group := ClassifyGroup("Spezialtransport", floatPtr(500)); group != "Spezialtransport" {
		t.Errorf("expected explicit group to win, got %q", group)
	}
	if group := ClassifyGroup("", floatPtr(250)); group != "Fernverkehr" {
		t.Errorf("expected Fernverkehr beyond 200km, got %q", group)
	}
	if group := ClassifyGroup("", floatPtr(50)); group != "Nahverkehr" {
		t.Errorf("expected Nahverkehr, got %q", group)
	}
	if group := ClassifyGroup("", nil); group != "Nahverkehr" {
		t.Errorf("expected Nahverkehr without a task distance, got %q", group)
	}
}

func TestPriorityLabel(t *testing.T) {
	tests := []struct {
		priority *int
		expected string
	}{
		{intPtr(1), "Hoch"},
		{intPtr(2), "Mittel"},
		{intPtr(3), "Niedrig"},
		{intPtr(9), "Mittel"},
		{nil, "Mittel"},
	}

	for _, test := range tests {
		if label := PriorityLabel(test.priority); label != test.expected {
			t.Errorf("PriorityLabel(%v) = %q, want %q", test.priority, label, test.expected)
		}
	}
}
