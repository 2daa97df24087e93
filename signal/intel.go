package signal

import (
	"fmt"
	"strings"
)

// IntelLevel is the visibility tier a viewer holds over another empire.
// Levels are ordered; comparisons use the underlying value.
type IntelLevel byte

const (
	IntelUnknown  IntelLevel = 0
	IntelBasic    IntelLevel = 1
	IntelModerate IntelLevel = 2
	IntelFull     IntelLevel = 3
)

var IntelLevelDictionary = map[IntelLevel]string{
	IntelUnknown:  "unknown",
	IntelBasic:    "basic",
	IntelModerate: "moderate",
	IntelFull:     "full",
}

// AllIntelLevels lists the tiers in ascending order.
func AllIntelLevels() []IntelLevel {
	return []IntelLevel{IntelUnknown, IntelBasic, IntelModerate, IntelFull}
}

func (l IntelLevel) String() string {
	if name, ok := IntelLevelDictionary[l]; ok {
		return name
	}
	return "invalid"
}

// AtLeast reports whether l is the same tier as min or higher.
func (l IntelLevel) AtLeast(min IntelLevel) bool {
	return l >= min
}

// ParseIntelLevel matches raw against the intel level names, ignoring
// case and surrounding space.
func ParseIntelLevel(raw string) (IntelLevel, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for l, name := range IntelLevelDictionary {
		if name == key {
			return l, true
		}
	}
	return IntelUnknown, false
}

func (l IntelLevel) MarshalText() ([]byte, error) {
	if l > IntelFull {
		return nil, fmt.Errorf("marshal intel level %d: out of range", l)
	}
	return []byte(l.String()), nil
}

func (l *IntelLevel) UnmarshalText(text []byte) error {
	parsed, ok := ParseIntelLevel(string(text))
	if !ok {
		return fmt.Errorf("unsupported intel level %q", string(text))
	}
	*l = parsed
	return nil
}
