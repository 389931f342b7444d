package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/outfit"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/weather"
)

// maxSuggestions caps the count query parameter.
const maxSuggestions = 20

// OutfitsHandler handles outfit suggestions and saved outfits.
type OutfitsHandler struct {
	Store   *store.Store
	Weather weather.Provider
	Count   int
	Now     func() time.Time
}

type suggestionsResponse struct {
	Season  model.Season      `json:"season"`
	Weather *weather.Snapshot `json:"weather,omitempty"`
	Outfits []model.Outfit    `json:"outfits"`
}

// Suggest handles GET /api/outfits/suggestions.
//
// Query parameters: count (default from config), seed (reproducible
// suggestions) and weather=1 (let the current weather pick the season).
func (h *OutfitsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	count := h.Count
	if count <= 0 {
		count = outfit.DefaultCount
	}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxSuggestions {
			jsonError(w, http.StatusBadRequest, "count must be between 0 and 20")
			return
		}
		count = n
	}

	gen := &outfit.Generator{}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		gen = outfit.NewSeeded(seed)
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	gen.Now = now

	resp := suggestionsResponse{Season: outfit.SeasonForMonth(now().Month())}

	if q.Get("weather") == "1" && h.Weather != nil {
		snap, err := h.Weather.FetchWeather(r.Context())
		if err != nil {
			// Fall back to the calendar season.
			slog.Warn("weather lookup failed", "error", err)
		} else {
			resp.Weather = &snap
			resp.Season = weather.SeasonFor(snap.Condition, resp.Season)
		}
	}
	gen.Season = resp.Season

	items, err := store.GetAll(r.Context(), h.Store, store.Wardrobe)
	if err != nil {
		storeError(w, err, "load wardrobe")
		return
	}

	resp.Outfits = gen.Generate(items, count)
	jsonResponse(w, http.StatusOK, resp)
}

// List handles GET /api/outfits.
func (h *OutfitsHandler) List(w http.ResponseWriter, r *http.Request) {
	outfits, err := store.GetAll(r.Context(), h.Store, store.SavedOutfits)
	if err != nil {
		storeError(w, err, "list outfits")
		return
	}
	jsonResponse(w, http.StatusOK, outfits)
}

// Save handles POST /api/outfits. Suggestions are saved as returned, so an
// outfit carrying an id keeps it.
func (h *OutfitsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var o model.Outfit
	if err := decodeJSON(r, &o); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.Validate(o); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := store.Add(r.Context(), h.Store, store.SavedOutfits, o)
	if err != nil {
		storeError(w, err, "save outfit")
		return
	}

	slog.Info("outfit saved", "id", saved.ID, "name", saved.Name, "items", len(saved.Items))
	jsonResponse(w, http.StatusCreated, saved)
}

// Delete handles DELETE /api/outfits/{id}.
func (h *OutfitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := store.Remove(r.Context(), h.Store, store.SavedOutfits, id); err != nil {
		storeError(w, err, "delete outfit")
		return
	}

	slog.Info("outfit removed", "id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "outfit deleted"})
}
