// Package commercial provides the commercial document repository contract.
package commercial

import (
	"context"
	"time"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain"
)

// Repository defines persistence operations for commercial documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, docID id.ID) (*Document, error)
	GetByNumber(ctx context.Context, number string) (*Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]DocumentLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []DocumentLine) error

	// Lineage
	GetChildren(ctx context.Context, parentID id.ID) ([]*Document, error)

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Document], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Document, error)
}

// ListFilter for filtering commercial documents.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	Type       *DocumentType
	Status     *Status
	CustomerID *id.ID
	ParentID   *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time

	// OverdueAsOf restricts to documents whose due date passed before the
	// given instant while still in a non-terminal status.
	OverdueAsOf *time.Time
}
