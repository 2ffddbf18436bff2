package ports

import (
	"context"

	"github.com/userdir/user-directory/internal/core/domain"
)

// CreateUserInput carries the caller-supplied fields of a new user.
// Geodata is resolved by the service layer, never by the caller.
type CreateUserInput struct {
	Name    string
	ZipCode string
}

// UserRepository defines persistence operations for users.
//
// Absence is not an error: FindByID and Update return (nil, nil) and Delete
// returns (false, nil) for unknown IDs. Only infrastructure failures
// (connectivity, timeouts) surface as errors.
type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput, geo domain.Geodata) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	// Update applies only the fields present in patch and returns the merged
	// record.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}
