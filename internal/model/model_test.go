package model

import (
	"reflect"
	"testing"
	"time"
)

func TestParseSeasons(t *testing.T) {
	tests := []struct {
		in      string
		want    []Season
		wantErr bool
	}{
		{"", nil, false},
		{"all", nil, false},
		{"summer", []Season{SeasonSummer}, false},
		{"Spring, fall", []Season{SeasonSpring, SeasonFall}, false},
		{"autumn,fall", []Season{SeasonFall}, false},
		{"monsoon", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseSeasons(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeasons(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSeasons(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSeasonTitle(t *testing.T) {
	if got := SeasonFall.Title(); got != "Fall" {
		t.Errorf("expected 'Fall', got %q", got)
	}
	if got := Season("").Title(); got != "" {
		t.Errorf("expected empty title, got %q", got)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, err)
		}
	}
	if _, err := ParseCategory("hats"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestInSeason(t *testing.T) {
	allYear := ClothingItem{Name: "Scarf"}
	summer := ClothingItem{Name: "Tank", Seasons: []Season{SeasonSummer}}

	if !allYear.InSeason(SeasonWinter) {
		t.Error("item without seasons should be wearable in winter")
	}
	if !summer.InSeason(SeasonSummer) {
		t.Error("summer item should be wearable in summer")
	}
	if summer.InSeason(SeasonWinter) {
		t.Error("summer item should not be wearable in winter")
	}
}

func TestSharesSeason(t *testing.T) {
	tests := []struct {
		a, b []Season
		want bool
	}{
		{nil, nil, true},
		{nil, []Season{SeasonWinter}, true},
		{[]Season{SeasonSummer}, []Season{SeasonSummer, SeasonFall}, true},
		{[]Season{SeasonSummer, SeasonSpring}, []Season{SeasonFall, SeasonWinter}, false},
	}

	for _, tt := range tests {
		a := ClothingItem{Seasons: tt.a}
		b := ClothingItem{Seasons: tt.b}
		if got := a.SharesSeason(b); got != tt.want {
			t.Errorf("SharesSeason(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := b.SharesSeason(a); got != tt.want {
			t.Errorf("SharesSeason(%v, %v) = %v, want %v (reversed)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestStampedKeepsExistingValues(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	later := at.Add(time.Hour)

	item := ClothingItem{Name: "Tee"}.Stamped("abc", at)
	if item.ID != "abc" || !item.DateAdded.Equal(at) {
		t.Fatalf("expected id and date to be filled, got %+v", item)
	}

	again := item.Stamped("xyz", later)
	if again.ID != "abc" {
		t.Errorf("expected id to stay 'abc', got %q", again.ID)
	}
	if !again.DateAdded.Equal(at) {
		t.Errorf("expected DateAdded to stay %v, got %v", at, again.DateAdded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  any
		wantErr bool
	}{
		{"valid item", ClothingItem{Name: "Tee", Category: CategoryTops}, false},
		{"missing name", ClothingItem{Category: CategoryTops}, true},
		{"bad category", ClothingItem{Name: "Hat", Category: "hats"}, true},
		{"bad season", ClothingItem{Name: "Tee", Category: CategoryTops, Seasons: []Season{"monsoon"}}, true},
		{"bad image url", ClothingItem{Name: "Tee", Category: CategoryTops, ImageURL: "not a url"}, true},
		{"empty outfit", Outfit{Name: "Nothing"}, true},
		{"valid outfit", Outfit{Name: "Look", Items: []ClothingItem{{Name: "Tee", Category: CategoryTops}}}, false},
	}

	for _, tt := range tests {
		err := Validate(tt.record)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestNewIDIsTimeOrdered(t *testing.T) {
	a := NewID()
	time.Sleep(2 * time.Millisecond)
	b := NewID()
	if a >= b {
		t.Errorf("expected %s < %s", a, b)
	}
}
