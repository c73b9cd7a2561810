package util

import "github.com/google/uuid"

// NewID returns a new UUID string used for client-side call correlation.
func NewID() string { return uuid.NewString() }
