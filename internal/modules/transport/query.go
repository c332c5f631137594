package transport

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"travelapi/internal/apperr"
	"travelapi/internal/types"
)

const trainDateTimeLayout = "2006-01-02 15:04"

// Canonical train windows queried when no time of day is given.
var defaultTrainWindows = []time.Duration{8 * time.Hour, 14 * time.Hour} //nolint:gochecknoglobals

// Query is the raw user input, shared by HTTP and CLI.
type Query struct {
	Origin      string `form:"origin" validate:"required,max=200"`
	Destination string `form:"destination" validate:"required,max=200"`
	Date        string `form:"date" validate:"max=32"`
}

// Request is a validated Query for one mode.
type Request struct {
	Origin      string
	Destination string
	// Date is the travel day at midnight, wall clock in UTC.
	Date time.Time
	// Windows are the departure times to search, train only.
	Windows []time.Time
}

func (q Query) normalized() Query {
	return Query{
		Origin:      strings.TrimSpace(q.Origin),
		Destination: strings.TrimSpace(q.Destination),
		Date:        strings.TrimSpace(q.Date),
	}
}

func validate(v *validator.Validate, q Query) error {
	if err := v.Struct(q); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok { //nolint:errorlint
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field())+" "+fe.Tag())
			}
		}
		if len(fields) == 0 {
			return apperr.InvalidInput("invalid query: %v", err)
		}
		return apperr.InvalidInput("invalid query: %s", strings.Join(fields, ", "))
	}
	return nil
}

// parse applies the per-mode date rules. Car and flight need YYYY-MM-DD.
// Train also accepts "YYYY-MM-DD HH:MM" (one window) or no date (today).
func parse(q Query, mode types.Mode, now time.Time) (Request, error) {
	req := Request{Origin: q.Origin, Destination: q.Destination}

	if mode != types.ModeTrain {
		if q.Date == "" {
			return Request{}, apperr.InvalidInput("date is required, use YYYY-MM-DD")
		}
		day, err := time.Parse(DateLayout, q.Date)
		if err != nil {
			return Request{}, apperr.InvalidInput("invalid date %q, use YYYY-MM-DD", q.Date)
		}
		req.Date = day
		return req, nil
	}

	switch {
	case q.Date == "":
		req.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case len(q.Date) == len(DateLayout):
		day, err := time.Parse(DateLayout, q.Date)
		if err != nil {
			return Request{}, apperr.InvalidInput("invalid date %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", q.Date)
		}
		req.Date = day
	default:
		at, err := time.Parse(trainDateTimeLayout, strings.Replace(q.Date, "T", " ", 1))
		if err != nil {
			return Request{}, apperr.InvalidInput("invalid date %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", q.Date)
		}
		req.Date = time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
		req.Windows = []time.Time{at}
		return req, nil
	}

	for _, offset := range defaultTrainWindows {
		req.Windows = append(req.Windows, req.Date.Add(offset))
	}
	return req, nil
}
