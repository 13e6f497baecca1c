package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/documents/commercial"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/storage/postgres"
)

const (
	commercialTable      = "doc_commercial"
	commercialLinesTable = "doc_commercial_lines"
)

// terminalStatuses are excluded from overdue queries.
var terminalStatuses = []string{
	string(commercial.StatusPaid),
	string(commercial.StatusCancelled),
}

// CommercialRepo implements commercial.Repository.
type CommercialRepo struct {
	*BaseDocumentRepo[*commercial.Document]
}

// NewCommercialRepo creates a new commercial document repository.
func NewCommercialRepo(txManager *postgres.TxManager) *CommercialRepo {
	return &CommercialRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			commercialTable,
			postgres.ExtractDBColumns[commercial.Document](),
			func() *commercial.Document { return &commercial.Document{} },
		),
	}
}

func (r *CommercialRepo) GetLines(ctx context.Context, docID id.ID) ([]commercial.DocumentLine, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "description", "unit",
			"quantity", "unit_price", "discount_percent", "tax_rate",
			"subtotal", "discount_amount", "tax_amount", "total",
		).
		From(commercialLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []commercial.DocumentLine
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

func (r *CommercialRepo) SaveLines(ctx context.Context, docID id.ID, lines []commercial.DocumentLine) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + commercialLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(commercialLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "description", "unit",
			"quantity", "unit_price", "discount_percent", "tax_rate",
			"subtotal", "discount_amount", "tax_amount", "total",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.Description, line.Unit,
			line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxRate,
			line.Subtotal, line.DiscountAmount, line.TaxAmount, line.Total,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

func (r *CommercialRepo) GetChildren(ctx context.Context, parentID id.ID) ([]*commercial.Document, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"parent_id": parentID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("date", "number")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var children []*commercial.Document
	if err := pgxscan.Select(ctx, r.querier(ctx), &children, sql, args...); err != nil {
		return nil, fmt.Errorf("get children: %w", err)
	}

	return children, nil
}

func (r *CommercialRepo) List(ctx context.Context, filter commercial.ListFilter) (domain.ListResult[*commercial.Document], error) {
	result := domain.ListResult[*commercial.Document]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.ParentID != nil {
		q = q.Where(squirrel.Eq{"parent_id": *filter.ParentID})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.OverdueAsOf != nil {
		q = q.Where(squirrel.Lt{"due_date": *filter.OverdueAsOf}).
			Where(squirrel.NotEq{"status": terminalStatuses})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"customer_name": searchPattern},
		})
	}

	return r.finishList(ctx, q, filter.ListFilter, result)
}
