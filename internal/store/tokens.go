package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	settingRevokedTokens     = "revoked_tokens"
	settingSessionGeneration = "session_generation"
)

// tokensMu serializes read-modify-write of the token settings.
var tokensMu sync.Mutex

// RevokeToken adds a token's JTI to the revocation list. Revocations are
// kept until the token would have expired anyway.
func RevokeToken(ctx context.Context, kv KV, jti string, expiresAt time.Time) error {
	tokensMu.Lock()
	defer tokensMu.Unlock()

	revoked, err := loadRevoked(ctx, kv)
	if err != nil {
		return err
	}

	// Opportunistically clean up expired revocations.
	now := time.Now()
	for id, exp := range revoked {
		if exp.Before(now) {
			delete(revoked, id)
		}
	}
	revoked[jti] = expiresAt

	data, err := json.Marshal(revoked)
	if err != nil {
		return fmt.Errorf("encoding revoked tokens: %w", err)
	}
	if err := kv.Put(ctx, settingKey(settingRevokedTokens), data); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsTokenRevoked checks if a token's JTI has been revoked.
func IsTokenRevoked(ctx context.Context, kv KV, jti string) (bool, error) {
	revoked, err := loadRevoked(ctx, kv)
	if err != nil {
		return false, err
	}
	_, ok := revoked[jti]
	return ok, nil
}

func loadRevoked(ctx context.Context, kv KV) (map[string]time.Time, error) {
	revoked := map[string]time.Time{}

	data, err := kv.Get(ctx, settingKey(settingRevokedTokens))
	if errors.Is(err, ErrKeyNotFound) {
		return revoked, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking token revocation: %w", err)
	}
	if err := json.Unmarshal(data, &revoked); err != nil {
		return nil, fmt.Errorf("decoding revoked tokens: %w: %v", ErrCorrupt, err)
	}
	return revoked, nil
}

// SessionGeneration returns the current session generation. Only tokens
// issued in this generation are accepted. It starts at 0.
func SessionGeneration(ctx context.Context, kv KV) (int64, error) {
	data, err := kv.Get(ctx, settingKey(settingSessionGeneration))
	if errors.Is(err, ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting session generation: %w", err)
	}
	gen, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing session generation: %w: %v", ErrCorrupt, err)
	}
	return gen, nil
}

// NextSessionGeneration invalidates every issued token by advancing the
// session generation, and returns the new generation.
func NextSessionGeneration(ctx context.Context, kv KV) (int64, error) {
	tokensMu.Lock()
	defer tokensMu.Unlock()

	gen, err := SessionGeneration(ctx, kv)
	if err != nil {
		return 0, err
	}
	gen++
	if err := kv.Put(ctx, settingKey(settingSessionGeneration), []byte(strconv.FormatInt(gen, 10))); err != nil {
		return 0, fmt.Errorf("setting session generation: %w", err)
	}
	return gen, nil
}
