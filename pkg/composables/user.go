package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kindred-app/kindred/pkg/constants"
)

var ErrNoUserID = errors.New("no user id found in context")

// WithUserID scopes the context to the acting (owning) user. Every store
// query downstream is filtered by this id.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.UserIDKey, userID)
}

func UseUserID(ctx context.Context) (uuid.UUID, error) {
	v := ctx.Value(constants.UserIDKey)
	if v == nil {
		return uuid.Nil, ErrNoUserID
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}
