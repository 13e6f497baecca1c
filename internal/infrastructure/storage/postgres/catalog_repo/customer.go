package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/catalogs/customer"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByVAT retrieves a customer by VAT number.
func (r *CustomerRepo) FindByVAT(ctx context.Context, vat string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"vat_number": vat}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", vat)
		}
		return nil, err
	}
	return c, nil
}
