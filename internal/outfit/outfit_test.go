package outfit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/model"
)

func at(month time.Month) func() time.Time {
	return func() time.Time { return time.Date(2024, month, 10, 12, 0, 0, 0, time.UTC) }
}

func item(id string, c model.Category, seasons ...model.Season) model.ClothingItem {
	return model.ClothingItem{ID: id, Name: id, Category: c, Color: "black", Seasons: seasons}
}

func seeded(seed uint64, month time.Month) *Generator {
	g := NewSeeded(seed)
	g.Now = at(month)
	n := 0
	g.NewID = func() string {
		n++
		return fmt.Sprintf("outfit-%d", n)
	}
	return g
}

func TestSeasonForMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		want  model.Season
	}{
		{time.January, model.SeasonWinter},
		{time.February, model.SeasonWinter},
		{time.March, model.SeasonSpring},
		{time.April, model.SeasonSpring},
		{time.May, model.SeasonSpring},
		{time.June, model.SeasonSummer},
		{time.July, model.SeasonSummer},
		{time.August, model.SeasonSummer},
		{time.September, model.SeasonFall},
		{time.October, model.SeasonFall},
		{time.November, model.SeasonFall},
		{time.December, model.SeasonWinter},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeasonForMonth(tt.month), "month %s", tt.month)
	}
}

func TestGenerateSummerPair(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("tee", model.CategoryTops, model.SeasonSummer),
		item("shorts", model.CategoryBottoms, model.SeasonSummer),
	}

	outfits := seeded(1, time.June).Generate(wardrobe, 1)

	require.Len(t, outfits, 1)
	o := outfits[0]
	assert.Equal(t, "Summer Outfit", o.Name)
	assert.Equal(t, []model.Season{model.SeasonSummer}, o.Seasons)
	assert.Equal(t, model.OccasionCasual, o.Occasion)
	assert.Equal(t, wardrobe, o.Items)
	assert.Equal(t, "outfit-1", o.ID)
	assert.True(t, o.CreatedAt.Equal(at(time.June)()))
}

func TestGenerateEmptyWardrobe(t *testing.T) {
	outfits := seeded(1, time.June).Generate(nil, 5)
	assert.NotNil(t, outfits)
	assert.Empty(t, outfits)
}

func TestGenerateFewerThanTwoItems(t *testing.T) {
	wardrobe := []model.ClothingItem{item("dress", model.CategoryDresses)}
	assert.Empty(t, seeded(1, time.June).Generate(wardrobe, 3))
}

func TestGenerateNonPositiveCount(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("tee", model.CategoryTops),
		item("jeans", model.CategoryBottoms),
	}
	assert.Empty(t, seeded(1, time.June).Generate(wardrobe, 0))
	assert.Empty(t, seeded(1, time.June).Generate(wardrobe, -2))
}

func TestGenerateSkipsOutOfSeasonItems(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("tee", model.CategoryTops, model.SeasonSummer),
		item("wool trousers", model.CategoryBottoms, model.SeasonWinter),
	}
	assert.Empty(t, seeded(1, time.July).Generate(wardrobe, 3))
}

// Items that both include the current season always overlap, so the pairwise
// check never rejects a pair that survived the seasonal filter, even when
// their other seasons differ.
func TestGeneratePairCheckAfterSeasonalFilter(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("tee", model.CategoryTops, model.SeasonSummer, model.SeasonSpring),
		item("linen pants", model.CategoryBottoms, model.SeasonSummer, model.SeasonFall),
	}
	outfits := seeded(3, time.July).Generate(wardrobe, 2)
	assert.Len(t, outfits, 2)
}

func TestGenerateOuterwearOnlyInColdSeasons(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("tee", model.CategoryTops),
		item("jeans", model.CategoryBottoms),
		item("coat", model.CategoryOuterwear),
	}

	for _, month := range []time.Month{time.April, time.July} {
		for _, o := range seeded(7, month).Generate(wardrobe, 3) {
			for _, it := range o.Items {
				assert.NotEqual(t, model.CategoryOuterwear, it.Category, "outerwear in %s", month)
			}
		}
	}

	for _, month := range []time.Month{time.October, time.January} {
		outfits := seeded(7, month).Generate(wardrobe, 3)
		require.Len(t, outfits, 3)
		for _, o := range outfits {
			assert.Len(t, o.Items, 3)
			assert.Equal(t, model.CategoryOuterwear, o.Items[2].Category)
		}
	}
}

func TestGenerateAccessoriesIgnoreSeason(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("tee", model.CategoryTops, model.SeasonSummer),
		item("shorts", model.CategoryBottoms, model.SeasonSummer),
		item("beanie", model.CategoryAccessories, model.SeasonWinter),
	}

	outfits := seeded(2, time.July).Generate(wardrobe, 1)
	require.Len(t, outfits, 1)
	require.Len(t, outfits[0].Items, 3)
	assert.Equal(t, "beanie", outfits[0].Items[2].ID)
}

func TestGenerateDressFill(t *testing.T) {
	wardrobe := []model.ClothingItem{
		{ID: "red", Name: "Red Dress", Category: model.CategoryDresses, Color: "Red"},
		{ID: "plain", Name: "Plain Dress", Category: model.CategoryDresses},
		item("sandals", model.CategoryShoes, model.SeasonSummer),
	}

	outfits := seeded(5, time.June).Generate(wardrobe, 4)
	require.Len(t, outfits, 4)
	for _, o := range outfits {
		require.NotEmpty(t, o.Items)
		dress := o.Items[0]
		assert.Equal(t, model.CategoryDresses, dress.Category)
		if dress.Color == "" {
			assert.Equal(t, "Dress Outfit", o.Name)
		} else {
			assert.Equal(t, "Red Dress Outfit", o.Name)
		}
		assert.Len(t, o.Items, 2, "sandals are always compatible")
	}
}

func TestGenerateTopsBeforeDresses(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("tee", model.CategoryTops),
		item("jeans", model.CategoryBottoms),
		item("dress", model.CategoryDresses),
	}

	outfits := seeded(9, time.May).Generate(wardrobe, 2)
	require.Len(t, outfits, 2)
	for _, o := range outfits {
		assert.Equal(t, "Spring Outfit", o.Name)
	}
}

func TestGenerateSeasonOverride(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("sweater", model.CategoryTops, model.SeasonWinter),
		item("cords", model.CategoryBottoms, model.SeasonWinter),
	}
	g := seeded(1, time.July)
	g.Season = model.SeasonWinter

	outfits := g.Generate(wardrobe, 1)
	require.Len(t, outfits, 1)
	assert.Equal(t, "Winter Outfit", outfits[0].Name)
}

func TestGenerateIsReproducible(t *testing.T) {
	wardrobe := []model.ClothingItem{
		item("t1", model.CategoryTops),
		item("t2", model.CategoryTops),
		item("t3", model.CategoryTops),
		item("b1", model.CategoryBottoms),
		item("b2", model.CategoryBottoms),
		item("s1", model.CategoryShoes),
		item("s2", model.CategoryShoes),
		item("a1", model.CategoryAccessories),
	}

	first := seeded(42, time.March).Generate(wardrobe, 5)
	second := seeded(42, time.March).Generate(wardrobe, 5)
	assert.Equal(t, first, second)
}

func TestGenerateProperties(t *testing.T) {
	all := []model.ClothingItem{
		item("t-summer", model.CategoryTops, model.SeasonSummer),
		item("t-any", model.CategoryTops),
		item("t-winter", model.CategoryTops, model.SeasonWinter, model.SeasonFall),
		item("b-any", model.CategoryBottoms),
		item("b-winter", model.CategoryBottoms, model.SeasonWinter),
		item("d-spring", model.CategoryDresses, model.SeasonSpring, model.SeasonSummer),
		item("o-fall", model.CategoryOuterwear, model.SeasonFall),
		item("o-winter", model.CategoryOuterwear, model.SeasonWinter),
		item("s-any", model.CategoryShoes),
		item("s-summer", model.CategoryShoes, model.SeasonSummer),
		item("a-scarf", model.CategoryAccessories, model.SeasonWinter),
	}

	for seed := uint64(0); seed < 50; seed++ {
		for month := time.January; month <= time.December; month++ {
			count := int(seed % 6)
			outfits := seeded(seed, month).Generate(all, count)
			assert.LessOrEqual(t, len(outfits), count)

			for _, o := range outfits {
				require.Len(t, o.Seasons, 1)
				season := o.Seasons[0]
				assert.Equal(t, SeasonForMonth(month), season)
				assert.GreaterOrEqual(t, len(o.Items), 1)
				assert.LessOrEqual(t, len(o.Items), 5)
				for _, it := range o.Items {
					if it.Category == model.CategoryAccessories {
						continue
					}
					assert.True(t, it.InSeason(season), "%s in %s outfit", it.ID, season)
				}
			}
		}
	}
}

func TestZeroGeneratorWorks(t *testing.T) {
	var g Generator
	outfits := g.Generate([]model.ClothingItem{
		item("tee", model.CategoryTops),
		item("jeans", model.CategoryBottoms),
	}, 2)
	require.Len(t, outfits, 2)
	assert.NotEqual(t, outfits[0].ID, outfits[1].ID)
}
