// internal/domain/entity/errors.go
package entity

import "errors"

// ErrNotFound marks a lookup miss. Expected, never logged as an error;
// callers fall back to the found-baggage browse list.
var ErrNotFound = errors.New("record not found")

// ErrValidation marks a rejected manual creation. Surfaced to the
// caller before any store mutation happens.
var ErrValidation = errors.New("validation failed")
