package person

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Person, error)
	// GetByUser returns every person owned by the given user. Duplicate
	// detection and merge validation rely on this pre-filtering: people of
	// other users must never be loaded for comparison.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Person, error)
	Create(ctx context.Context, p Person) (Person, error)
	Update(ctx context.Context, p Person) (Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
