// README: Pricing service computes fare estimates per transport mode.
package pricing

import (
	"fmt"

	"travelapi/internal/types"
)

type Service struct {
	rates map[types.Mode]Rate
}

// NewService uses DefaultRates when rates is nil.
func NewService(rates map[types.Mode]Rate) *Service {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Service{rates: rates}
}

// Estimate prices a trip of distance d. An unknown distance gives an unknown
// price, never zero. Known fares are truncated to whole currency units.
func (s *Service) Estimate(mode types.Mode, d types.Distance) (types.Price, error) {
	rate, ok := s.rates[mode]
	if !ok {
		return types.UnknownPrice(), fmt.Errorf("no rate for mode %q", mode)
	}

	km, known := d.Value()
	if !known {
		return types.UnknownPrice(), nil
	}

	return types.KnownPrice(types.Money{
		Amount:   int64(rate.Apply(km)),
		Currency: rate.Currency,
	}), nil
}

func CarFare(km float64) float64 {
	return DefaultRates()[types.ModeCar].Apply(km)
}

func TrainFare(km float64) float64 {
	return DefaultRates()[types.ModeTrain].Apply(km)
}

func FlightFare(km float64) float64 {
	return DefaultRates()[types.ModeFlight].Apply(km)
}
