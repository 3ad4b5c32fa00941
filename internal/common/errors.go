// Package common defines shared constants and sentinel errors used across
// the s3share server and CLI. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("file not found")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Identity token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrNoEmailClaim = errors.New("identity token has no email claim")

	// OAuth callback errors.
	ErrStateMismatch = errors.New("sign-in state mismatch")
)
