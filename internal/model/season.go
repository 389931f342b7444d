package model

import (
	"fmt"
	"slices"
	"strings"
)

// Season is a meteorological season in the northern hemisphere.
type Season string

// Seasons.
const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// Seasons lists every season in calendar order.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

// Valid reports whether s is one of the four seasons.
func (s Season) Valid() bool {
	return slices.Contains(Seasons, s)
}

// Title returns the season name with a leading capital, e.g. "Summer".
func (s Season) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseSeasons parses a comma separated list such as "spring,fall".
// "autumn" is accepted as an alias for fall and "all" (or an empty string)
// yields no seasons, meaning all year.
func ParseSeasons(list string) ([]Season, error) {
	var out []Season
	for _, part := range strings.Split(list, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "", "all":
			continue
		case "autumn":
			part = string(SeasonFall)
		}
		s := Season(part)
		if !s.Valid() {
			return nil, fmt.Errorf("unknown season %q", part)
		}
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out, nil
}

