package session

import "errors"

var (
	ErrNoCredential  = errors.New("login response carries no access token")
	ErrEmptyIdentity = errors.New("identity response is empty")
	ErrSignedOut     = errors.New("not signed in")
	// ErrSessionChanged means the session was replaced or ended while a
	// refresh was in flight; the refresh result is dropped.
	ErrSessionChanged = errors.New("session changed during refresh")
)
