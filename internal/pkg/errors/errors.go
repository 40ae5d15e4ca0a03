// Package errors holds the sentinels shared by repos and domain modules.
// Services translate them to API errors; they never reach clients as-is.
package errors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict marks a uniqueness violation, e.g. a taken username.
	ErrConflict = errors.New("conflict")
)
