package relationship

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GetByPerson returns every relationship with the given person on
	// either side.
	GetByPerson(ctx context.Context, personID uuid.UUID) ([]Relationship, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Relationship, error)
	Create(ctx context.Context, r Relationship) (Relationship, error)
	Update(ctx context.Context, r Relationship) (Relationship, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByPerson removes every relationship referencing the person on
	// either side. Mirrors the store's cascade on person deletion.
	DeleteByPerson(ctx context.Context, personID uuid.UUID) error
}
