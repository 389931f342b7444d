package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	settingJWTSecret = "jwt_secret"
	settingPasscode  = "passcode"
)

func settingKey(name string) string {
	return "@omara/settings/" + name
}

// putIfAbsenter is implemented by backends that can initialize a key
// atomically across processes.
type putIfAbsenter interface {
	PutIfAbsent(ctx context.Context, key string, value []byte) ([]byte, error)
}

// GetJWTSecret retrieves the token signing secret, generating and storing
// one on first use.
func GetJWTSecret(ctx context.Context, kv KV) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := []byte(hex.EncodeToString(buf))
	key := settingKey(settingJWTSecret)

	if p, ok := kv.(putIfAbsenter); ok {
		secret, err := p.PutIfAbsent(ctx, key, candidate)
		if err != nil {
			return "", fmt.Errorf("storing jwt secret: %w", err)
		}
		return string(secret), nil
	}

	secret, err := kv.Get(ctx, key)
	if err == nil {
		return string(secret), nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return "", fmt.Errorf("querying jwt secret: %w", err)
	}
	if err := kv.Put(ctx, key, candidate); err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}
	return string(candidate), nil
}

// GetPasscodeHash returns the stored bcrypt hash of the owner's passcode, or
// ErrNotFound if the store was never initialized.
func GetPasscodeHash(ctx context.Context, kv KV) (string, error) {
	hash, err := kv.Get(ctx, settingKey(settingPasscode))
	if errors.Is(err, ErrKeyNotFound) {
		return "", fmt.Errorf("passcode: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting passcode: %w", err)
	}
	return string(hash), nil
}

// SetPasscodeHash replaces the owner's passcode hash.
func SetPasscodeHash(ctx context.Context, kv KV, hash string) error {
	if err := kv.Put(ctx, settingKey(settingPasscode), []byte(hash)); err != nil {
		return fmt.Errorf("setting passcode: %w", err)
	}
	return nil
}
