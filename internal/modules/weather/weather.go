// README: Current weather for a city, with an optional caller-supplied date echoed back.
package weather

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"travelapi/internal/apperr"
	"travelapi/internal/providers/openweather"
)

const currentLabel = "current"

type Provider interface {
	Current(ctx context.Context, city string) (openweather.Current, error)
}

type Query struct {
	City string `form:"city" validate:"required,max=200"`
	Date string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

type Report struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Weather     string  `json:"weather"`
	Date        string  `json:"date"`
}

type Service struct {
	provider Provider
	validate *validator.Validate
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider, validate: validator.New()}
}

// Lookup returns current conditions. The date only labels the report; the
// provider has no forecast for it.
func (s *Service) Lookup(ctx context.Context, q Query) (Report, error) {
	q.City = strings.TrimSpace(q.City)
	if err := s.validate.Struct(q); err != nil {
		return Report{}, apperr.InvalidInput("invalid weather query, use city and date as YYYY-MM-DD: %v", err)
	}

	current, err := s.provider.Current(ctx, q.City)
	if err != nil {
		return Report{}, fmt.Errorf("weather for %s: %w", q.City, err)
	}

	date := q.Date
	if date == "" {
		date = currentLabel
	}
	return Report{
		City:        q.City,
		Temperature: current.Temperature,
		Weather:     current.Description,
		Date:        date,
	}, nil
}
