// README: Static airport reference record.
package airport

import "travelapi/internal/types"

type Airport struct {
	IATA     string      `json:"iata"`
	ICAO     string      `json:"icao"`
	Name     string      `json:"name"`
	City     string      `json:"city"`
	Country  string      `json:"country"`
	Location types.Point `json:"location"`
}
