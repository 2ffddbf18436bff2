package ports

import (
	"context"

	"github.com/userdir/user-directory/internal/core/domain"
)

// UpdateUserInput is the partial update accepted by PATCH /users/:id.
// Nil means the field was absent from the request body.
type UpdateUserInput struct {
	Name    *string
	ZipCode *string
}

// UserService exposes the user lifecycle operations to the HTTP layer.
// Get and Update return (nil, nil) and Delete returns (false, nil) when the
// ID is unknown; the handler maps those to a not-found response.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}
