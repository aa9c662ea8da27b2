// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides bearer tokens and password handling.

# Bearer Tokens

Tokens are HS256 JWTs whose subject is the user id:

	token, err := auth.GenerateToken(userID, email, secret, 24*time.Hour)
	userID, err := auth.ValidateToken(token, secret)

ValidateToken rejects unexpected signing methods and distinguishes an
expired token (ErrExpiredToken) from a malformed or tampered one
(ErrInvalidToken); both map to Unauthenticated at the HTTP boundary.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, attempt)

ValidatePassword enforces the registration policy (8+ characters, digit,
upper-case letter, special character) with user-facing error messages.
*/
package auth
