package auth

import "errors"

// Authentication failures surfaced to the assistant or the browser.
// The messages are user-facing and deliberately actionable: they tell
// the user which of "log in", "log in again" or "request a new link"
// fixes the situation.
var (
	// ErrNotLoggedIn is returned when a protected tool is called with no
	// session record for the caller.
	ErrNotLoggedIn = errors.New("User not logged in, login to continue.")

	// ErrSessionExpired is returned when the caller's session record
	// exists but has passed its expiry.
	ErrSessionExpired = errors.New("Session expired, make a relogin request to continue.")

	// ErrTokenInvalid covers malformed, tampered and expired signed
	// tokens.
	ErrTokenInvalid = errors.New("Login link expired or invalid. Please request a new login to continue.")

	// ErrTokenConsumed is returned when a single-use token is presented
	// a second time.
	ErrTokenConsumed = errors.New("Token is no longer valid")
)
