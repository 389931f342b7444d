// Package weather provides current-conditions lookups for outfit suggestions.
// Only a deterministic mock exists; a real provider can replace it without
// touching its callers.
package weather

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/erazemk/omara/internal/model"
)

// Condition is a coarse weather category.
type Condition string

// Conditions.
const (
	Sunny  Condition = "sunny"
	Cloudy Condition = "cloudy"
	Rainy  Condition = "rainy"
	Snowy  Condition = "snowy"
	Stormy Condition = "stormy"
	Hot    Condition = "hot"
	Cold   Condition = "cold"
	Mild   Condition = "mild"
)

// Conditions lists every condition.
var Conditions = []Condition{Sunny, Cloudy, Rainy, Snowy, Stormy, Hot, Cold, Mild}

// Snapshot is the weather at one place and time. Temperature is in
// Fahrenheit, wind speed in mph.
type Snapshot struct {
	Temperature int       `json:"temperature"`
	Condition   Condition `json:"condition"`
	Description string    `json:"conditionDescription"`
	Icon        string    `json:"icon"`
	Humidity    int       `json:"humidity"`
	WindSpeed   int       `json:"windSpeed"`
	Location    string    `json:"location"`
	Timestamp   time.Time `json:"timestamp"`
}

// Provider fetches the current weather.
type Provider interface {
	FetchWeather(ctx context.Context) (Snapshot, error)
}

// Categorize maps a free-text description from a weather service onto a
// Condition. Unknown or empty descriptions are Mild.
func Categorize(description string) Condition {
	d := strings.ToLower(strings.TrimSpace(description))
	for _, c := range Conditions {
		if d == string(c) {
			return c
		}
	}

	switch {
	case strings.Contains(d, "clear"), strings.Contains(d, "sun"):
		return Sunny
	case strings.Contains(d, "cloud"):
		return Cloudy
	case strings.Contains(d, "rain"), strings.Contains(d, "drizzle"):
		return Rainy
	case strings.Contains(d, "snow"), strings.Contains(d, "sleet"), strings.Contains(d, "ice"):
		return Snowy
	case strings.Contains(d, "thunder"), strings.Contains(d, "storm"):
		return Stormy
	}
	return Mild
}

// SeasonFor returns the season whose wardrobe suits the condition, or
// fallback when the condition says nothing about temperature.
func SeasonFor(c Condition, fallback model.Season) model.Season {
	switch c {
	case Hot, Sunny:
		return model.SeasonSummer
	case Cold, Snowy:
		return model.SeasonWinter
	}
	return fallback
}

// Describe returns a short human readable description of c.
func Describe(c Condition) string {
	switch c {
	case Sunny:
		return "Clear sky"
	case Cloudy:
		return "Cloudy"
	case Rainy:
		return "Rain"
	case Snowy:
		return "Snow"
	case Stormy:
		return "Thunderstorm"
	case Hot:
		return "Very hot"
	case Cold:
		return "Very cold"
	case Mild:
		return "Mild"
	}
	return "Unknown"
}

// Icon returns the OpenWeatherMap icon code for c.
func Icon(c Condition) string {
	switch c {
	case Cloudy:
		return "03d"
	case Rainy:
		return "10d"
	case Snowy, Cold:
		return "13d"
	case Stormy:
		return "11d"
	case Mild:
		return "02d"
	}
	return "01d"
}

// Mock is a Provider that invents plausible weather. It never fails except
// when ctx is cancelled during Delay.
type Mock struct {
	Location string
	Delay    time.Duration
	Now      func() time.Time

	mu   sync.Mutex
	rand *rand.Rand
}

// NewMock returns a mock provider for location seeded with seed.
func NewMock(location string, seed uint64) *Mock {
	return &Mock{
		Location: location,
		rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// FetchWeather returns a random snapshot whose temperature suits its condition.
func (m *Mock) FetchWeather(ctx context.Context) (Snapshot, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-timer.C:
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := Conditions[m.intN(len(Conditions))]

	var temp int
	switch c {
	case Hot, Sunny:
		temp = 80 + m.intN(15)
	case Cold, Snowy:
		temp = 20 + m.intN(20)
	case Rainy, Cloudy, Stormy:
		temp = 50 + m.intN(20)
	default:
		temp = 65 + m.intN(10)
	}

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	return Snapshot{
		Temperature: temp,
		Condition:   c,
		Description: Describe(c),
		Icon:        Icon(c),
		Humidity:    40 + m.intN(40),
		WindSpeed:   5 + m.intN(15),
		Location:    m.Location,
		Timestamp:   now(),
	}, nil
}

func (m *Mock) intN(n int) int {
	if m.rand == nil {
		return rand.IntN(n)
	}
	return m.rand.IntN(n)
}
