// README: Fare rate definition for each transport mode.
package pricing

import "travelapi/internal/types"

// Rate is a linear fare: BaseFare + PerKm*distance, optionally clamped.
type Rate struct {
	Mode     types.Mode
	BaseFare float64
	PerKm    float64
	Clamp    bool
	Min      float64
	Max      float64
	Currency string
}

// DefaultRates are the calibrated fares for the French market.
func DefaultRates() map[types.Mode]Rate {
	return map[types.Mode]Rate{
		types.ModeCar: {
			Mode:     types.ModeCar,
			PerKm:    0.2,
			Currency: types.CurrencyEUR,
		},
		types.ModeTrain: {
			Mode:     types.ModeTrain,
			BaseFare: 16.875,
			PerKm:    0.105,
			Clamp:    true,
			Min:      20,
			Max:      150,
			Currency: types.CurrencyEUR,
		},
		types.ModeFlight: {
			Mode:     types.ModeFlight,
			BaseFare: 50,
			PerKm:    0.2,
			Currency: types.CurrencyEUR,
		},
	}
}

// Apply returns the raw fare for km, before truncation to whole units.
func (r Rate) Apply(km float64) float64 {
	fare := r.BaseFare + r.PerKm*km
	if r.Clamp {
		fare = min(max(fare, r.Min), r.Max)
	}
	return fare
}
