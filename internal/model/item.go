package model

import (
	"fmt"
	"slices"
	"time"
)

// Category is the garment type of a clothing item.
type Category string

// Categories.
const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryTops,
	CategoryBottoms,
	CategoryDresses,
	CategoryOuterwear,
	CategoryShoes,
	CategoryAccessories,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// ClothingItem is a single garment in the wardrobe or on the wishlist.
type ClothingItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=200"`
	Category  Category  `json:"category" validate:"required,oneof=tops bottoms dresses outerwear shoes accessories"`
	Color     string    `json:"color" validate:"max=50"`
	Seasons   []Season  `json:"season,omitempty" validate:"max=4,dive,oneof=spring summer fall winter"`
	Brand     string    `json:"brand,omitempty" validate:"max=100"`
	ImageURL  string    `json:"imageUrl,omitempty" validate:"omitempty,url"`
	UserImage string    `json:"userImage,omitempty"`
	Occasion  string    `json:"occasion,omitempty" validate:"max=50"`
	Pattern   string    `json:"pattern,omitempty" validate:"max=50"`
	Material  string    `json:"material,omitempty" validate:"max=50"`
	DateAdded time.Time `json:"dateAdded"`
}

// RecordID returns the item's identifier.
func (i ClothingItem) RecordID() string { return i.ID }

// Stamped returns a copy with the id and DateAdded filled in where empty.
func (i ClothingItem) Stamped(id string, at time.Time) ClothingItem {
	if i.ID == "" {
		i.ID = id
	}
	if i.DateAdded.IsZero() {
		i.DateAdded = at
	}
	return i
}

// InSeason reports whether the item can be worn in s. Items without any
// season are wearable all year.
func (i ClothingItem) InSeason(s Season) bool {
	return len(i.Seasons) == 0 || slices.Contains(i.Seasons, s)
}

// SharesSeason reports whether two items can be worn together. Items
// without seasons are compatible with everything.
func (i ClothingItem) SharesSeason(other ClothingItem) bool {
	if len(i.Seasons) == 0 || len(other.Seasons) == 0 {
		return true
	}
	for _, s := range i.Seasons {
		if slices.Contains(other.Seasons, s) {
			return true
		}
	}
	return false
}
