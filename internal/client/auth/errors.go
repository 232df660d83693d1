package auth

import "errors"

var (
	ErrNotAuthenticated   = errors.New("not authenticated: save a token with `todosync token`")
	ErrTokenExpired       = errors.New("access token expired")
	ErrPassphraseRequired = errors.New("stored token is encrypted: passphrase required")
	ErrEmptyToken         = errors.New("token cannot be empty")
)
