package pricing

import (
	"math"
	"testing"

	"travelapi/internal/types"
)

func TestTrainFare_Calibration(t *testing.T) {
	tests := []struct {
		name      string
		km        float64
		want      float64
		tolerance float64
	}{
		{name: "clamped floor", km: 0, want: 20, tolerance: 0},
		{name: "clamped ceiling", km: 10000, want: 150, tolerance: 0},
		{name: "125 km", km: 125, want: 30, tolerance: 0.5},
		{name: "600 km", km: 600, want: 80, tolerance: 0.5},
		{name: "Paris to Nice", km: 683.0, want: 88.59, tolerance: 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrainFare(tt.km)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("TrainFare(%v) = %v, want %v (±%v)", tt.km, got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestFares_Monotonic(t *testing.T) {
	fares := map[string]func(float64) float64{
		"car":    CarFare,
		"train":  TrainFare,
		"flight": FlightFare,
	}
	for name, fare := range fares {
		t.Run(name, func(t *testing.T) {
			prev := fare(0)
			for km := 0.5; km <= 5000; km += 0.5 {
				cur := fare(km)
				if cur < prev {
					t.Fatalf("%s fare decreased at %v km: %v < %v", name, km, cur, prev)
				}
				prev = cur
			}
		})
	}
}

func TestFares_Formulas(t *testing.T) {
	if got := CarFare(931.5); math.Abs(got-186.3) > 1e-9 {
		t.Errorf("CarFare(931.5) = %v", got)
	}
	if got := FlightFare(686.0); math.Abs(got-187.2) > 1e-9 {
		t.Errorf("FlightFare(686) = %v", got)
	}
	if got := CarFare(0); got != 0 {
		t.Errorf("CarFare(0) = %v, want 0 (no floor)", got)
	}
}

func TestService_Estimate(t *testing.T) {
	s := NewService(nil)

	tests := []struct {
		name      string
		mode      types.Mode
		distance  types.Distance
		wantKnown bool
		wantFare  int64
	}{
		{name: "train Paris to Nice truncates", mode: types.ModeTrain, distance: types.Km(683.0), wantKnown: true, wantFare: 88},
		{name: "train floor", mode: types.ModeTrain, distance: types.Km(1), wantKnown: true, wantFare: 20},
		{name: "car", mode: types.ModeCar, distance: types.Km(931.5), wantKnown: true, wantFare: 186},
		{name: "car truncates upper fraction", mode: types.ModeCar, distance: types.Km(443), wantKnown: true, wantFare: 88},
		{name: "flight", mode: types.ModeFlight, distance: types.Km(686.0), wantKnown: true, wantFare: 187},
		{name: "unknown distance", mode: types.ModeTrain, distance: types.UnknownDistance(), wantKnown: false},
		{name: "unknown car distance", mode: types.ModeCar, distance: types.UnknownDistance(), wantKnown: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Estimate(tt.mode, tt.distance)
			if err != nil {
				t.Fatalf("Estimate() error = %v", err)
			}
			m, known := got.Money()
			if known != tt.wantKnown {
				t.Fatalf("Estimate() known = %v, want %v", known, tt.wantKnown)
			}
			if known && m.Amount != tt.wantFare {
				t.Errorf("Estimate() = %v, want %v", m.Amount, tt.wantFare)
			}
			if known && m.Currency != types.CurrencyEUR {
				t.Errorf("Estimate() currency = %q", m.Currency)
			}
		})
	}
}

func TestService_UnknownMode(t *testing.T) {
	if _, err := NewService(nil).Estimate(types.Mode("boat"), types.Km(10)); err == nil {
		t.Error("expected error for unknown mode")
	}
}
