// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/danielhkuo/project-judge/models"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid token format")
)

// voterTokenBytes is the entropy of a voter token (192 bits)
const voterTokenBytes = 24

// GenerateAdminKey derives the admin key of a project set from its name.
// The server never stores it; handing it out again means recomputing it.
func GenerateAdminKey(setName, salt string) string {
	return base64.RawURLEncoding.EncodeToString(mac(salt, setName))
}

func mac(salt, msg string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(msg))
	return h.Sum(nil)
}

// ValidateAdminKey checks if the provided admin key is valid for the set
func ValidateAdminKey(setName, adminKey, salt string) error {
	expected := GenerateAdminKey(setName, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateVoterToken issues an anonymous voter identity. Votes are
// recorded against it.
func GenerateVoterToken() (string, error) {
	b := make([]byte, voterTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate voter token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateVoterToken checks that a token has the shape GenerateVoterToken
// produces. It cannot tell whether the token was issued by this server.
func ValidateVoterToken(token string) error {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(b) != voterTokenBytes {
		return ErrInvalidToken
	}
	return nil
}

// ViewerRole decides who is looking at a set: admin when the admin key
// checks out, voter when a well-formed voter token is present, public
// otherwise.
func ViewerRole(setName, adminKey, voterToken, salt string) models.Role {
	if adminKey != "" && ValidateAdminKey(setName, adminKey, salt) == nil {
		return models.RoleAdmin
	}
	if voterToken != "" && ValidateVoterToken(voterToken) == nil {
		return models.RoleVoter
	}
	return models.RolePublic
}

// HashIP returns a salted, truncated digest of a voter address. Votes store
// it instead of the raw IP.
func HashIP(ip, salt string) string {
	return hex.EncodeToString(mac(salt, ip)[:8])
}
