// Package recognition guesses clothing attributes from a photo.
package recognition

import (
	"context"
	"strings"
	"time"

	"github.com/erazemk/omara/internal/model"
)

// Field names an attribute that can be guessed.
type Field string

// Fields.
const (
	FieldCategory Field = "category"
	FieldBrand    Field = "brand"
	FieldOccasion Field = "occasion"
	FieldColor    Field = "color"
	FieldPattern  Field = "pattern"
	FieldMaterial Field = "material"
)

// AllFields lists the fields in form order.
var AllFields = []Field{FieldCategory, FieldBrand, FieldOccasion, FieldColor, FieldPattern, FieldMaterial}

// thresholds is the minimum confidence for a guess to be used as a default.
var thresholds = map[Field]float64{
	FieldCategory: 0.70,
	FieldBrand:    0.80,
	FieldOccasion: 0.65,
	FieldColor:    0.75,
	FieldPattern:  0.70,
	FieldMaterial: 0.75,
}

// Guesses are predicted attributes and a confidence in [0, 1] per field.
// Missing fields have no guess.
type Guesses struct {
	Category   model.Category    `json:"category,omitempty"`
	Brand      string            `json:"brand,omitempty"`
	Occasion   string            `json:"occasion,omitempty"`
	Color      string            `json:"color,omitempty"`
	Pattern    string            `json:"pattern,omitempty"`
	Material   string            `json:"material,omitempty"`
	Confidence map[Field]float64 `json:"confidence"`
}

// Confident reports whether the guess for f is good enough to prefill a form.
func (g Guesses) Confident(f Field) bool {
	c, ok := g.Confidence[f]
	return ok && c >= thresholds[f]
}

// Apply copies confident guesses into empty fields of item.
func (g Guesses) Apply(item model.ClothingItem) model.ClothingItem {
	if item.Category == "" && g.Category != "" && g.Confident(FieldCategory) {
		item.Category = g.Category
	}
	if item.Brand == "" && g.Brand != "" && g.Confident(FieldBrand) {
		item.Brand = g.Brand
	}
	if item.Occasion == "" && g.Occasion != "" && g.Confident(FieldOccasion) {
		item.Occasion = g.Occasion
	}
	if item.Color == "" && g.Color != "" && g.Confident(FieldColor) {
		item.Color = g.Color
	}
	if item.Pattern == "" && g.Pattern != "" && g.Confident(FieldPattern) {
		item.Pattern = g.Pattern
	}
	if item.Material == "" && g.Material != "" && g.Confident(FieldMaterial) {
		item.Material = g.Material
	}
	return item
}

// Recognizer analyzes an image identified by uri.
type Recognizer interface {
	RecognizeImage(ctx context.Context, uri string) (Guesses, error)
}

var (
	brands    = []string{"Nike", "Adidas", "Zara", "H&M", "Uniqlo", "Levi's", "Gap", "Gucci", "Prada", ""}
	occasions = []string{"casual", "formal", "business", "sports", "party", "everyday"}
	colors    = []string{"black", "white", "red", "blue", "green", "yellow", "purple", "pink", "orange", "brown", "gray"}
	patterns  = []string{"solid", "striped", "plaid", "floral", "polka_dot", "graphic", "other"}
	materials = []string{"cotton", "wool", "polyester", "leather", "denim", "silk", "linen"}
)

// Mock derives stable guesses from the image's file name, so the same photo
// always yields the same attributes.
type Mock struct {
	Delay time.Duration
}

// RecognizeImage returns guesses seeded from the last path segment of uri.
func (m Mock) RecognizeImage(ctx context.Context, uri string) (Guesses, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Guesses{}, ctx.Err()
		case <-timer.C:
		}
	}

	seed := seedOf(uri)
	g := Guesses{
		Category: model.Categories[seed%len(model.Categories)],
		Brand:    brands[(seed*13)%len(brands)],
		Occasion: occasions[(seed*7)%len(occasions)],
		Color:    colors[(seed*5)%len(colors)],
		Pattern:  patterns[(seed*11)%len(patterns)],
		Material: materials[(seed*17)%len(materials)],
		Confidence: map[Field]float64{
			FieldCategory: 0.50 + float64(seed%50)/100,
			FieldOccasion: 0.40 + float64(seed%55)/100,
			FieldColor:    0.60 + float64(seed%40)/100,
			FieldPattern:  0.45 + float64(seed%45)/100,
			FieldMaterial: 0.35 + float64(seed%50)/100,
		},
	}
	if g.Brand != "" {
		g.Confidence[FieldBrand] = 0.30 + float64(seed%60)/100
	}
	return g, nil
}

// seedOf sums the bytes of the final path element of uri.
func seedOf(uri string) int {
	name := uri
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		name = uri[i+1:]
	}
	n := 0
	for i := 0; i < len(name); i++ {
		n += int(name[i])
	}
	return n
}
