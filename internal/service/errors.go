package service

import "errors"

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrInvalidThemeMode    = errors.New("invalid theme mode")

	// ErrLoginFailed is the single condition surfaced for any login failure:
	// bad credentials, network trouble, and malformed upstream responses all
	// collapse into it. The underlying cause rides along in the wrap message.
	ErrLoginFailed = errors.New("login failed")

	// ErrRegistrationFailed covers failures of the user-creation call.
	ErrRegistrationFailed = errors.New("registration failed")

	ErrNotAuthenticated = errors.New("not authenticated")
)
