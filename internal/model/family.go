package model

import (
	"fmt"
	"strings"
)

// GameFamily identifies one of the supported HoYoLAB wikis.
type GameFamily string

const (
	Genshin  GameFamily = "genshin"
	StarRail GameFamily = "hsr"
)

// Families lists every supported wiki in a stable order.
var Families = []GameFamily{Genshin, StarRail}

// ParseGameFamily maps a wiki identifier ("genshin", "hsr") to a GameFamily.
func ParseGameFamily(s string) (GameFamily, error) {
	switch f := GameFamily(strings.TrimSpace(s)); f {
	case Genshin, StarRail:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGameFamily, s)
	}
}

// DisplayName is the human-readable game title used in log lines.
func (f GameFamily) DisplayName() string {
	switch f {
	case Genshin:
		return "Genshin Impact"
	case StarRail:
		return "Honkai: Star Rail"
	default:
		return string(f)
	}
}
