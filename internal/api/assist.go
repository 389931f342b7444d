package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/omara/internal/recognition"
	"github.com/erazemk/omara/internal/weather"
)

// AssistHandler exposes the weather and recognition capabilities.
type AssistHandler struct {
	Weather    weather.Provider
	Recognizer recognition.Recognizer
}

type recognizeRequest struct {
	URI string `json:"uri"`
}

type recognizeResponse struct {
	recognition.Guesses
	// Confident lists the fields good enough to prefill.
	Confident []recognition.Field `json:"confident"`
}

// CurrentWeather handles GET /api/weather.
func (h *AssistHandler) CurrentWeather(w http.ResponseWriter, r *http.Request) {
	if h.Weather == nil {
		jsonError(w, http.StatusNotImplemented, "no weather provider configured")
		return
	}

	snap, err := h.Weather.FetchWeather(r.Context())
	if err != nil {
		slog.Error("weather lookup failed", "error", err)
		jsonError(w, http.StatusBadGateway, "weather unavailable")
		return
	}
	jsonResponse(w, http.StatusOK, snap)
}

// Recognize handles POST /api/recognize.
func (h *AssistHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	if h.Recognizer == nil {
		jsonError(w, http.StatusNotImplemented, "no recognizer configured")
		return
	}

	var req recognizeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URI == "" {
		jsonError(w, http.StatusBadRequest, "uri required")
		return
	}

	guesses, err := h.Recognizer.RecognizeImage(r.Context(), req.URI)
	if err != nil {
		slog.Error("image recognition failed", "uri", req.URI, "error", err)
		jsonError(w, http.StatusBadGateway, "recognition failed")
		return
	}

	resp := recognizeResponse{Guesses: guesses, Confident: []recognition.Field{}}
	for _, f := range recognition.AllFields {
		if guesses.Confident(f) {
			resp.Confident = append(resp.Confident, f)
		}
	}
	jsonResponse(w, http.StatusOK, resp)
}
