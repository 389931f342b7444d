package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// MinPasscodeLength is the shortest passcode accepted.
const MinPasscodeLength = 8

// ErrWrongPasscode is returned when a passcode does not match its hash.
var ErrWrongPasscode = errors.New("wrong passcode")

// ValidatePasscode checks passcode strength rules.
func ValidatePasscode(passcode string) error {
	if len(passcode) < MinPasscodeLength {
		return fmt.Errorf("passcode must be at least %d characters", MinPasscodeLength)
	}
	if len(passcode) > 72 {
		return fmt.Errorf("passcode must be at most 72 bytes")
	}
	return nil
}

// HashPasscode returns the bcrypt hash of passcode.
func HashPasscode(passcode string) (string, error) {
	if err := ValidatePasscode(passcode); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing passcode: %w", err)
	}
	return string(hash), nil
}

// CheckPasscode compares passcode against hash.
func CheckPasscode(hash, passcode string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)); err != nil {
		return ErrWrongPasscode
	}
	return nil
}

// GeneratePasscode creates a random passcode of the given length.
func GeneratePasscode(length int) (string, error) {
	const charset = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
