// Package outfit assembles random outfit suggestions from a wardrobe.
package outfit

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/erazemk/omara/internal/model"
)

// DefaultCount is the number of suggestions produced when none is requested.
const DefaultCount = 3

// SeasonForMonth maps a calendar month to its northern hemisphere season:
// March to May is spring, June to August summer, September to November fall
// and December to February winter.
func SeasonForMonth(m time.Month) model.Season {
	switch m {
	case time.March, time.April, time.May:
		return model.SeasonSpring
	case time.June, time.July, time.August:
		return model.SeasonSummer
	case time.September, time.October, time.November:
		return model.SeasonFall
	default:
		return model.SeasonWinter
	}
}

// Generator produces outfit suggestions. The zero value is usable and draws
// from the global random source and the wall clock.
type Generator struct {
	// Rand is the source of randomness. Set it to a seeded source for
	// reproducible suggestions.
	Rand *rand.Rand

	// Now returns the current time; it decides the season and CreatedAt.
	Now func() time.Time

	// NewID returns ids for generated outfits.
	NewID func() string

	// Season overrides the season derived from Now when set.
	Season model.Season
}

// NewSeeded returns a generator whose choices are fully determined by seed.
func NewSeeded(seed uint64) *Generator {
	return &Generator{Rand: rand.New(rand.NewPCG(seed, seed))}
}

// wardrobe holds the items eligible for one generation run.
type wardrobe struct {
	tops, bottoms, dresses, outerwear, shoes, accessories []model.ClothingItem
}

// sortWardrobe partitions items by category, keeping only those wearable in season.
// Accessories are kept regardless of season.
func sortWardrobe(items []model.ClothingItem, season model.Season) wardrobe {
	var w wardrobe
	for _, item := range items {
		if item.Category == model.CategoryAccessories {
			w.accessories = append(w.accessories, item)
			continue
		}
		if !item.InSeason(season) {
			continue
		}
		switch item.Category {
		case model.CategoryTops:
			w.tops = append(w.tops, item)
		case model.CategoryBottoms:
			w.bottoms = append(w.bottoms, item)
		case model.CategoryDresses:
			w.dresses = append(w.dresses, item)
		case model.CategoryOuterwear:
			w.outerwear = append(w.outerwear, item)
		case model.CategoryShoes:
			w.shoes = append(w.shoes, item)
		}
	}
	return w
}

// Generate returns up to count outfits assembled from items. Fewer outfits
// (possibly none) are returned when the wardrobe cannot supply them; that is
// not an error.
func (g *Generator) Generate(items []model.ClothingItem, count int) []model.Outfit {
	outfits := []model.Outfit{}
	if count <= 0 || len(items) < 2 {
		return outfits
	}

	now := g.now()
	season := g.Season
	if season == "" {
		season = SeasonForMonth(now.Month())
	}
	layered := season == model.SeasonFall || season == model.SeasonWinter
	w := sortWardrobe(items, season)

	if len(w.tops) > 0 && len(w.bottoms) > 0 {
		for i := 0; i < count*2 && len(outfits) < count; i++ {
			top, bottom := g.pick(w.tops), g.pick(w.bottoms)
			if !top.SharesSeason(bottom) {
				continue
			}

			picked := []model.ClothingItem{top, bottom}
			picked = g.addCompatible(picked, w.shoes)
			if layered {
				picked = g.addCompatible(picked, w.outerwear)
			}
			if len(w.accessories) > 0 {
				picked = append(picked, g.pick(w.accessories))
			}

			outfits = append(outfits, g.outfit(season.Title()+" Outfit", picked, season, now))
		}
	}

	if len(outfits) < count && len(w.dresses) > 0 {
		for i := 0; i < count && len(outfits) < count; i++ {
			dress := g.pick(w.dresses)

			picked := []model.ClothingItem{dress}
			picked = g.addCompatible(picked, w.shoes)
			if layered {
				picked = g.addCompatible(picked, w.outerwear)
			}
			if len(w.accessories) > 0 {
				picked = append(picked, g.pick(w.accessories))
			}

			name := strings.TrimSpace(dress.Color + " Dress Outfit")
			outfits = append(outfits, g.outfit(name, picked, season, now))
		}
	}

	return outfits
}

// addCompatible appends one random candidate if it shares a season with
// every item already picked.
func (g *Generator) addCompatible(picked, candidates []model.ClothingItem) []model.ClothingItem {
	if len(candidates) == 0 {
		return picked
	}
	c := g.pick(candidates)
	for _, item := range picked {
		if !item.SharesSeason(c) {
			return picked
		}
	}
	return append(picked, c)
}

func (g *Generator) outfit(name string, items []model.ClothingItem, season model.Season, now time.Time) model.Outfit {
	return model.Outfit{
		ID:        g.newID(),
		Name:      name,
		Items:     items,
		Seasons:   []model.Season{season},
		Occasion:  model.OccasionCasual,
		CreatedAt: now,
	}
}

func (g *Generator) pick(items []model.ClothingItem) model.ClothingItem {
	if g.Rand != nil {
		return items[g.Rand.IntN(len(items))]
	}
	return items[rand.IntN(len(items))]
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) newID() string {
	if g.NewID != nil {
		return g.NewID()
	}
	return model.NewID()
}
