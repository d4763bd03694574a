package services

import (
	"context"

	"github.com/google/uuid"
)

// Actor is the acting user as seen by the merge/import pipeline: their id
// (all loaded data is scoped to it) and the id of their designated self
// person, which must never be merged into or away from.
type Actor struct {
	ID              uuid.UUID
	DefaultPersonID uuid.UUID
}

// TxRunner runs fn inside one atomic transaction. The production runner is
// composables.InTx; tests substitute a snapshot/rollback runner over
// in-memory repositories.
type TxRunner func(ctx context.Context, fn func(context.Context) error) error
