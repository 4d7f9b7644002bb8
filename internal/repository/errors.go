// Package repository implements MySQL persistence for users, refresh
// tokens and reservations.  Sentinel errors declared here let handlers
// distinguish failure scenarios without inspecting SQL errors.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// reservation they are not a party to.  Handlers translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
