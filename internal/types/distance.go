package types

import (
	"fmt"
	"math"
)

// UnknownLiteral is what every absent value serializes to.
const UnknownLiteral = "Unknown"

// Distance is a kilometre value that may be unknown. The zero value is unknown.
type Distance struct {
	km    float64
	known bool
}

// Km rounds to one decimal and clamps negatives to zero.
func Km(km float64) Distance {
	if km < 0 || math.IsNaN(km) {
		km = 0
	}
	return Distance{km: math.Round(km*10) / 10, known: true}
}

// UnknownDistance is the explicit absent marker.
func UnknownDistance() Distance {
	return Distance{}
}

func (d Distance) Known() bool {
	return d.known
}

// Value returns the kilometres and whether they are known.
func (d Distance) Value() (float64, bool) {
	return d.km, d.known
}

func (d Distance) String() string {
	if !d.known {
		return UnknownLiteral
	}
	return fmt.Sprintf("%.1fkm", d.km)
}
