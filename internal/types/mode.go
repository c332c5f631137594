package types

import "fmt"

// Mode is a transport mode.
type Mode string

const (
	ModeCar    Mode = "car"
	ModeTrain  Mode = "train"
	ModeFlight Mode = "flight"
)

// Modes lists every supported mode in display order.
func Modes() []Mode {
	return []Mode{ModeCar, ModeTrain, ModeFlight}
}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeCar, ModeTrain, ModeFlight:
		return m, nil
	default:
		return "", fmt.Errorf("unknown transport mode %q", s)
	}
}
