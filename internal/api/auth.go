package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/omara/internal/auth"
	"github.com/erazemk/omara/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	KV        store.KV
	JWTSecret string
}

type loginRequest struct {
	Passcode string `json:"passcode"`
	Device   string `json:"device"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changePasscodeRequest struct {
	CurrentPasscode string `json:"current_passcode"`
	NewPasscode     string `json:"new_passcode"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Passcode == "" {
		jsonError(w, http.StatusBadRequest, "passcode required")
		return
	}

	hash, err := store.GetPasscodeHash(r.Context(), h.KV)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusServiceUnavailable, "wardrobe not initialized, run 'omara init'")
		return
	}
	if err != nil {
		slog.Error("failed to read passcode", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := auth.CheckPasscode(hash, req.Passcode); err != nil {
		slog.Warn("login failed", "device", req.Device, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid passcode")
		return
	}

	gen, err := store.SessionGeneration(r.Context(), h.KV)
	if err != nil {
		slog.Error("failed to read session generation", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, req.Device, gen)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("owner logged in", "device", req.Device)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}

// Logout handles POST /api/auth/logout. It revokes the calling token, or
// with ?all=1 every token issued so far.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if r.URL.Query().Get("all") == "1" {
		if _, err := store.NextSessionGeneration(r.Context(), h.KV); err != nil {
			slog.Error("failed to revoke sessions", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to log out")
			return
		}
		slog.Info("all sessions revoked", "device", claims.Device)
		jsonResponse(w, http.StatusOK, map[string]string{"message": "all sessions logged out"})
		return
	}

	expiresAt := time.Now().Add(auth.TokenExpiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := store.RevokeToken(r.Context(), h.KV, claims.ID, expiresAt); err != nil {
		slog.Error("failed to revoke token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	slog.Info("owner logged out", "device", claims.Device)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// ChangePasscode handles PUT /api/auth/passcode.
func (h *AuthHandler) ChangePasscode(w http.ResponseWriter, r *http.Request) {
	var req changePasscodeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CurrentPasscode == "" || req.NewPasscode == "" {
		jsonError(w, http.StatusBadRequest, "current and new passcode required")
		return
	}

	hash, err := store.GetPasscodeHash(r.Context(), h.KV)
	if err != nil {
		slog.Error("failed to read passcode", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := auth.CheckPasscode(hash, req.CurrentPasscode); err != nil {
		jsonError(w, http.StatusUnauthorized, "current passcode is incorrect")
		return
	}

	newHash, err := auth.HashPasscode(req.NewPasscode)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetPasscodeHash(r.Context(), h.KV, newHash); err != nil {
		slog.Error("failed to store passcode", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update passcode")
		return
	}

	// Sessions opened with the old passcode end here.
	gen, err := store.NextSessionGeneration(r.Context(), h.KV)
	if err != nil {
		slog.Error("failed to revoke sessions", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to revoke old sessions")
		return
	}

	device := ""
	if claims := GetClaims(r.Context()); claims != nil {
		device = claims.Device
	}
	token, err := auth.GenerateToken(h.JWTSecret, device, gen)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("passcode changed", "device", device)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}
