package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Storage keys of the session token.
const (
	TokenKey       = "authToken"
	LegacyTokenKey = "token"
)

// ErrNoExpiry is returned for tokens without an exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

// Store persists string values, like a browser's local storage.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// MigrateLegacyToken moves a token stored under LegacyTokenKey to TokenKey.
// It only acts when no token is stored under TokenKey, and reports
// whether it moved one.
func MigrateLegacyToken(store Store) (bool, error) {
	if _, ok, err := store.Get(TokenKey); err != nil || ok {
		return false, err
	}
	legacy, ok, err := store.Get(LegacyTokenKey)
	if err != nil || !ok || legacy == "" {
		return false, err
	}
	if err := store.Set(TokenKey, legacy); err != nil {
		return false, err
	}
	if err := store.Remove(LegacyTokenKey); err != nil {
		return false, err
	}
	return true, nil
}

// ParseExpiry returns the exp claim of a JWT. The signature is not
// verified; only the service can do that.
func ParseExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("decode token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("decode token: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}
