// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

A set's admin key is HMAC-SHA256 of its name under ADMIN_KEY_SALT:

	adminKey := auth.GenerateAdminKey(setName, salt)
	err := auth.ValidateAdminKey(setName, adminKey, salt)

Keys are unpadded URL-safe base64. Nothing is stored; validation recomputes
the key and compares in constant time.

# Voter Tokens

Voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()
	err = auth.ValidateVoterToken(token)

Tokens are URL-safe base64 encoded (32 characters) and handed out with the
ballot. Submitted votes carry the token so repeat submissions can be traced.

# Viewer Roles

ViewerRole turns request credentials into a models.Role for the entry table:

	role := auth.ViewerRole(setName, adminKey, voterToken, salt)

A valid admin key gives RoleAdmin, a well-formed voter token gives RoleVoter,
anything else is RolePublic.

# IP Hashing

	hash := auth.HashIP(middleware.GetClientIP(r), salt)

The first 8 bytes (16 hex chars) of HMAC-SHA256 go into vote.ip_hash.
*/
package auth
