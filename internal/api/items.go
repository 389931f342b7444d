package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/recognition"
	"github.com/erazemk/omara/internal/store"
)

// ThumbnailSize is the edge length of wardrobe grid thumbnails.
const ThumbnailSize = 256

// ItemsHandler handles the wardrobe and wishlist endpoints. Each method
// returns a handler bound to one collection.
type ItemsHandler struct {
	Store      *store.Store
	Recognizer recognition.Recognizer
}

type createItemRequest struct {
	model.ClothingItem
	// Recognize fills empty attributes from the item's image when the
	// recognizer is confident.
	Recognize bool `json:"recognize"`
}

// List handles GET /api/{collection}.
func (h *ItemsHandler) List(c store.Collection[model.ClothingItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.GetAll(r.Context(), h.Store, c)
		if err != nil {
			storeError(w, err, "list "+c.Name)
			return
		}

		if cat := r.URL.Query().Get("category"); cat != "" {
			category, err := model.ParseCategory(cat)
			if err != nil {
				jsonError(w, http.StatusBadRequest, err.Error())
				return
			}
			filtered := []model.ClothingItem{}
			for _, item := range items {
				if item.Category == category {
					filtered = append(filtered, item)
				}
			}
			items = filtered
		}

		jsonResponse(w, http.StatusOK, items)
	}
}

// Create handles POST /api/{collection}.
func (h *ItemsHandler) Create(c store.Collection[model.ClothingItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createItemRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		item := req.ClothingItem
		// Ids and dates are assigned by the store.
		item.ID = ""
		item.DateAdded = time.Time{}

		if req.Recognize && h.Recognizer != nil {
			uri := item.UserImage
			if uri == "" {
				uri = item.ImageURL
			}
			if uri != "" {
				guesses, err := h.Recognizer.RecognizeImage(r.Context(), uri)
				if err != nil {
					slog.Warn("image recognition failed", "uri", uri, "error", err)
				} else {
					item = guesses.Apply(item)
				}
			}
		}

		if err := model.Validate(item); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}

		created, err := store.Add(r.Context(), h.Store, c, item)
		if err != nil {
			storeError(w, err, "add item")
			return
		}

		slog.Info("item added", "collection", c.Name, "id", created.ID, "category", created.Category)
		jsonResponse(w, http.StatusCreated, created)
	}
}

// Get handles GET /api/{collection}/{id}.
func (h *ItemsHandler) Get(c store.Collection[model.ClothingItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := store.Get(r.Context(), h.Store, c, r.PathValue("id"))
		if err != nil {
			storeError(w, err, "get item")
			return
		}
		jsonResponse(w, http.StatusOK, item)
	}
}

// Delete handles DELETE /api/{collection}/{id}.
func (h *ItemsHandler) Delete(c store.Collection[model.ClothingItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := store.Remove(r.Context(), h.Store, c, id); err != nil {
			storeError(w, err, "delete item")
			return
		}

		slog.Info("item removed", "collection", c.Name, "id", id)
		jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
	}
}

// Acquire handles POST /api/wishlist/{id}/acquire: the item was bought and
// moves from the wishlist into the wardrobe.
func (h *ItemsHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	item, err := store.Move(r.Context(), h.Store, store.Wishlist, store.Wardrobe, r.PathValue("id"))
	if err != nil {
		storeError(w, err, "move item")
		return
	}

	slog.Info("wishlist item acquired", "id", item.ID, "name", item.Name)
	jsonResponse(w, http.StatusOK, item)
}

// UploadImage handles PUT /api/{collection}/{id}/image.
func (h *ItemsHandler) UploadImage(c store.Collection[model.ClothingItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+(1<<20))

		if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
			jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "image file required")
			return
		}
		defer file.Close()

		result, err := imaging.Process(file)
		if err != nil {
			if errors.Is(err, imaging.ErrTooLarge) {
				jsonError(w, http.StatusRequestEntityTooLarge, "image too large")
				return
			}
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}

		id := r.PathValue("id")
		err = h.Store.SetPhoto(r.Context(), c, id, store.Photo{Data: result.Data, MIME: result.MIME})
		if err != nil {
			storeError(w, err, "save image")
			return
		}

		slog.Info("image uploaded", "collection", c.Name, "id", id, "width", result.Width, "height", result.Height)
		jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
	}
}

// GetImage handles GET /api/{collection}/{id}/image. With ?thumb=1 a square
// thumbnail for the wardrobe grid is served instead.
func (h *ItemsHandler) GetImage(c store.Collection[model.ClothingItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		photo, err := h.Store.GetPhoto(r.Context(), c, r.PathValue("id"))
		if err != nil {
			storeError(w, err, "get image")
			return
		}

		data, mime := photo.Data, photo.MIME
		if r.URL.Query().Get("thumb") == "1" {
			thumb, err := imaging.Thumbnail(bytes.NewReader(photo.Data), ThumbnailSize)
			if err != nil {
				slog.Error("failed to build thumbnail", "error", err)
				jsonError(w, http.StatusInternalServerError, "failed to build thumbnail")
				return
			}
			data, mime = thumb.Data, thumb.MIME
		}

		w.Header().Set("Content-Type", mime)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "private, max-age=3600")
		if _, err := w.Write(data); err != nil {
			slog.Error("failed to write image response", "error", err)
		}
	}
}
