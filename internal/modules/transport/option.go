// README: Normalized itinerary record shared by every transport mode.
package transport

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"travelapi/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	DateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Option is one itinerary. It is immutable: fields are only set by NewOption,
// and the arrival is always derived from departure and duration.
type Option struct {
	mode      types.Mode
	from      string
	to        string
	departure time.Time
	duration  time.Duration
	price     types.Price
	distance  types.Distance
}

// NewOption builds an Option. Durations are kept to whole seconds.
func NewOption(
	mode types.Mode,
	from, to string,
	departure time.Time,
	duration time.Duration,
	price types.Price,
	distance types.Distance,
) (Option, error) {
	if duration < 0 {
		return Option{}, fmt.Errorf("negative duration %s", duration)
	}
	if departure.IsZero() {
		return Option{}, fmt.Errorf("departure is required")
	}
	return Option{
		mode:      mode,
		from:      from,
		to:        to,
		departure: departure,
		duration:  duration.Truncate(time.Second),
		price:     price,
		distance:  distance,
	}, nil
}

func (o Option) Mode() types.Mode         { return o.mode }
func (o Option) From() string             { return o.from }
func (o Option) To() string               { return o.to }
func (o Option) Departure() time.Time     { return o.departure }
func (o Option) Arrival() time.Time       { return o.departure.Add(o.duration) }
func (o Option) Duration() time.Duration  { return o.duration }
func (o Option) Price() types.Price       { return o.price }
func (o Option) Distance() types.Distance { return o.distance }

func (o Option) DurationMinutes() int {
	return int(o.duration / time.Minute)
}

// DurationText renders the duration as "Xh Ym".
func (o Option) DurationText() string {
	m := o.DurationMinutes()
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

// TimeText renders "HH:MM-HH:MM".
func (o Option) TimeText() string {
	return o.departure.Format(clockLayout) + "-" + o.Arrival().Format(clockLayout)
}

type optionJSON struct {
	From            string     `json:"from"`
	To              string     `json:"to"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Duration        string     `json:"duration"`
	Type            types.Mode `json:"type"`
	Price           any        `json:"price"`
	Currency        string     `json:"currency"`
	Distance        string     `json:"distance"`
	Departure       string     `json:"departure"`
	Arrival         string     `json:"arrival"`
	DurationMinutes int        `json:"duration_minutes"`
	DistanceKm      any        `json:"distance_km"`
}

// MarshalJSON emits the shared schema. Absent price and distance are the
// literal "Unknown", never null or zero.
func (o Option) MarshalJSON() ([]byte, error) {
	out := optionJSON{
		From:            o.from,
		To:              o.to,
		Date:            o.departure.Format(DateLayout),
		Time:            o.TimeText(),
		Duration:        o.DurationText(),
		Type:            o.mode,
		Price:           types.UnknownLiteral,
		Currency:        types.CurrencyEUR,
		Distance:        o.distance.String(),
		Departure:       o.departure.Format(dateTimeLayout),
		Arrival:         o.Arrival().Format(dateTimeLayout),
		DurationMinutes: o.DurationMinutes(),
		DistanceKm:      types.UnknownLiteral,
	}
	if m, ok := o.price.Money(); ok {
		out.Price = m.Amount
		out.Currency = m.Currency
	}
	if km, ok := o.distance.Value(); ok {
		out.DistanceKm = km
	}
	return json.Marshal(out)
}
