package core

import "github.com/google/uuid"

// NewID generates a new unique identifier for behaviors and nodes.
func NewID() string { return uuid.NewString() }
