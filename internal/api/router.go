package api

import (
	"net/http"
	"time"

	"github.com/erazemk/omara/internal/recognition"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/weather"
)

// Deps are the services the API is built on. Weather and Recognizer may be
// nil, in which case their endpoints answer 501.
type Deps struct {
	Store       *store.Store
	JWTSecret   string
	Weather     weather.Provider
	Recognizer  recognition.Recognizer
	OutfitCount int
	Now         func() time.Time
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{KV: d.Store.KV(), JWTSecret: d.JWTSecret}
	itemsHandler := &ItemsHandler{Store: d.Store, Recognizer: d.Recognizer}
	outfitsHandler := &OutfitsHandler{Store: d.Store, Weather: d.Weather, Count: d.OutfitCount, Now: d.Now}
	assistHandler := &AssistHandler{Weather: d.Weather, Recognizer: d.Recognizer}

	authMW := AuthMiddleware(d.JWTSecret, d.Store.KV())

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/passcode", authMW(http.HandlerFunc(authHandler.ChangePasscode)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Wardrobe and wishlist share their handlers.
	for _, c := range store.ItemCollections {
		base := "/api/" + c.Name
		mux.Handle("GET "+base, authMW(itemsHandler.List(c)))
		mux.Handle("POST "+base, authMW(itemsHandler.Create(c)))
		mux.Handle("GET "+base+"/{id}", authMW(itemsHandler.Get(c)))
		mux.Handle("DELETE "+base+"/{id}", authMW(itemsHandler.Delete(c)))
		mux.Handle("PUT "+base+"/{id}/image", authMW(itemsHandler.UploadImage(c)))
		mux.Handle("GET "+base+"/{id}/image", authMW(itemsHandler.GetImage(c)))
	}
	mux.Handle("POST /api/wishlist/{id}/acquire", authMW(http.HandlerFunc(itemsHandler.Acquire)))

	// Outfits.
	mux.Handle("GET /api/outfits/suggestions", authMW(http.HandlerFunc(outfitsHandler.Suggest)))
	mux.Handle("GET /api/outfits", authMW(http.HandlerFunc(outfitsHandler.List)))
	mux.Handle("POST /api/outfits", authMW(http.HandlerFunc(outfitsHandler.Save)))
	mux.Handle("DELETE /api/outfits/{id}", authMW(http.HandlerFunc(outfitsHandler.Delete)))

	// Assistants.
	mux.Handle("GET /api/weather", authMW(http.HandlerFunc(assistHandler.CurrentWeather)))
	mux.Handle("POST /api/recognize", authMW(http.HandlerFunc(assistHandler.Recognize)))

	return mux
}
