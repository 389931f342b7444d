package model

import "time"

// Outfit is a combination of clothing items worn together. Items are
// embedded so a saved outfit stays readable after its garments are removed
// from the wardrobe.
type Outfit struct {
	ID        string         `json:"id"`
	Name      string         `json:"name" validate:"required,max=200"`
	Items     []ClothingItem `json:"items" validate:"required,min=1,max=5,dive"`
	Seasons   []Season       `json:"season,omitempty" validate:"dive,oneof=spring summer fall winter"`
	Occasion  string         `json:"occasion,omitempty" validate:"max=50"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Default occasion assigned to generated outfits.
const OccasionCasual = "casual"

// RecordID returns the outfit's identifier.
func (o Outfit) RecordID() string { return o.ID }

// Stamped returns a copy with the id and CreatedAt filled in where empty.
func (o Outfit) Stamped(id string, at time.Time) Outfit {
	if o.ID == "" {
		o.ID = id
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = at
	}
	return o
}
