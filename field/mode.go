package field

import "fmt"

// Mode selects how the directional grid is derived from noise.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCurl
	ModeSpiral
	ModeTurbulent
	ModeRidged
	ModeWarped
)

var modeNames = map[Mode]string{
	ModeNormal:    "normal",
	ModeCurl:      "curl",
	ModeSpiral:    "spiral",
	ModeTurbulent: "turbulent",
	ModeRidged:    "ridged",
	ModeWarped:    "warped",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name to a Mode. Unknown names are an error.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return ModeNormal, fmt.Errorf("unknown field mode %q", name)
}
