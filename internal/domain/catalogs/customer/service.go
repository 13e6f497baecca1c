package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/numerator"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/tx"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain"
)

// Service provides business logic for the Customer catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Customer service.
func NewService(
	repo Repository,
	gen numerator.Generator,
	txManager tx.Manager,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks before create.
func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		cfg := numerator.Config{Prefix: "CUS", PadWidth: 5}
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	return s.checkVATUnique(ctx, c)
}

// prepareForUpdate handles uniqueness checks before update.
func (s *Service) prepareForUpdate(ctx context.Context, c *Customer) error {
	return s.checkVATUnique(ctx, c)
}

// FindByVAT retrieves a customer by VAT number.
func (s *Service) FindByVAT(ctx context.Context, vat string) (*Customer, error) {
	return s.repo.FindByVAT(ctx, vat)
}

// checkVATUnique rejects a VAT number already used by another customer.
func (s *Service) checkVATUnique(ctx context.Context, c *Customer) error {
	if c.VATNumber == nil || *c.VATNumber == "" {
		return nil
	}

	exists, err := s.vatExists(ctx, *c.VATNumber, c.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflict("customer with this VAT number already exists").
			WithDetail("vat_number", *c.VATNumber)
	}
	return nil
}

func (s *Service) vatExists(ctx context.Context, vat string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByVAT(ctx, vat)
	if err != nil {
		// Not found is OK; other errors must be propagated (DB errors, timeouts, etc.).
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}
