package domain

import "errors"

// ErrMissingCredential is returned when no client key is configured.
var ErrMissingCredential = errors.New("missing credential")

// ErrUnknownAction is returned when an action name is not registered.
var ErrUnknownAction = errors.New("unknown action")

// ErrMissingAccount is returned when the caller account identifier is empty.
var ErrMissingAccount = errors.New("missing account")
