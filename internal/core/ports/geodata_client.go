package ports

import (
	"context"

	"github.com/userdir/user-directory/internal/core/domain"
)

// GeodataClient resolves a US ZIP code into coordinates and a UTC offset.
// Implementations fail with *domain.ExternalServiceError on any upstream
// problem; there is no retry and no caching.
type GeodataClient interface {
	GetByZipCode(ctx context.Context, zipCode string) (*domain.Geodata, error)
}
