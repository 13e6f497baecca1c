package customer

import (
	"context"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByVAT retrieves a customer by VAT number (unique when set).
	FindByVAT(ctx context.Context, vat string) (*Customer, error)

	// GetForUpdate retrieves a customer with a row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Customer, error)
}
