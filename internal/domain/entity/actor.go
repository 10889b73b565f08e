package entity

import "github.com/google/uuid"

// Actor identifies the authenticated admin behind a mutation. A zero Actor
// means the caller is unknown.
type Actor struct {
	ID    *uuid.UUID
	Email string
}
