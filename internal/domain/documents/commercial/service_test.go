package commercial

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/numerator"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain"
)

// --- Mocks ---

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockRepo struct {
	docs  map[id.ID]*Document
	lines map[id.ID][]DocumentLine
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		docs:  make(map[id.ID]*Document),
		lines: make(map[id.ID][]DocumentLine),
	}
}

func (r *mockRepo) Create(ctx context.Context, doc *Document) error {
	if _, ok := r.docs[doc.ID]; ok {
		return apperror.NewDuplicate("document", "id", doc.ID.String())
	}
	stored := *doc
	stored.Lines = nil
	stored.Children = nil
	r.docs[doc.ID] = &stored
	return nil
}

func (r *mockRepo) GetByID(ctx context.Context, docID id.ID) (*Document, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("document", docID.String())
	}
	found := *doc
	return &found, nil
}

func (r *mockRepo) GetByNumber(ctx context.Context, number string) (*Document, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			found := *doc
			return &found, nil
		}
	}
	return nil, apperror.NewNotFound("document", number)
}

func (r *mockRepo) Update(ctx context.Context, doc *Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("document", doc.ID.String())
	}
	stored := *doc
	stored.Lines = nil
	stored.Children = nil
	r.docs[doc.ID] = &stored
	return nil
}

func (r *mockRepo) Delete(ctx context.Context, docID id.ID) error {
	doc, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("document", docID.String())
	}
	doc.DeletionMark = true
	return nil
}

func (r *mockRepo) GetLines(ctx context.Context, docID id.ID) ([]DocumentLine, error) {
	return r.lines[docID], nil
}

func (r *mockRepo) SaveLines(ctx context.Context, docID id.ID, lines []DocumentLine) error {
	r.lines[docID] = append([]DocumentLine(nil), lines...)
	return nil
}

func (r *mockRepo) GetChildren(ctx context.Context, parentID id.ID) ([]*Document, error) {
	var children []*Document
	for _, doc := range r.docs {
		if doc.ParentID != nil && *doc.ParentID == parentID {
			child := *doc
			children = append(children, &child)
		}
	}
	return children, nil
}

func (r *mockRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Document], error) {
	var items []*Document
	for _, doc := range r.docs {
		if filter.Type != nil && doc.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && doc.Status != *filter.Status {
			continue
		}
		if filter.OverdueAsOf != nil && !doc.IsOverdue(*filter.OverdueAsOf) {
			continue
		}
		found := *doc
		items = append(items, &found)
	}
	return domain.ListResult[*Document]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *mockRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Document, error) {
	return r.GetByID(ctx, docID)
}

var _ Repository = (*mockRepo)(nil)

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, numerator.NewMock(), stubTxManager{}, func() time.Time { return testNow })
}

// --- Tests ---

func TestServiceCreate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	doc := draftWithLine(TypeQuote)
	require.NoError(t, svc.Create(ctx, doc))

	assert.Equal(t, "QUO-2026-00001", doc.Number)

	stored, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, stored.Status)
	assert.Len(t, stored.Lines, 1)
	assert.True(t, stored.Total.Equal(d("324")))
}

func TestServiceCreate_RejectsSubmittedStatus(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	doc := draftWithLine(TypeQuote)
	doc.Status = StatusValidated

	err := svc.Create(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestServiceCreate_NumberPerType(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	quote := draftWithLine(TypeQuote)
	invoice := draftWithLine(TypeInvoice)
	secondQuote := draftWithLine(TypeQuote)

	require.NoError(t, svc.Create(ctx, quote))
	require.NoError(t, svc.Create(ctx, invoice))
	require.NoError(t, svc.Create(ctx, secondQuote))

	assert.Equal(t, "QUO-2026-00001", quote.Number)
	assert.Equal(t, "INV-2026-00001", invoice.Number)
	assert.Equal(t, "QUO-2026-00002", secondQuote.Number)
}

func TestServiceValidate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	doc := draftWithLine(TypeQuote)
	require.NoError(t, svc.Create(ctx, doc))

	validated, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusValidated, validated.Status)
	require.NotNil(t, validated.ValidatedAt)
	assert.Equal(t, testNow, *validated.ValidatedAt)

	stored, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusValidated, stored.Status)
}

func TestServiceValidate_EmptyDocument(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	doc := NewDocument(TypeInvoice, newTestID())
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.Validate(ctx, doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestServiceUpdate_FrozenDocument(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	doc := draftWithLine(TypeQuote)
	require.NoError(t, svc.Create(ctx, doc))
	_, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	frozen, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	frozen.Notes = "changed"

	err = svc.Update(ctx, frozen)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotEditable, appErr.Code)
}

func TestServiceReportStatusAndCancel(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	doc := draftWithLine(TypeInvoice)
	require.NoError(t, svc.Create(ctx, doc))
	_, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	sent, err := svc.ReportStatus(ctx, doc.ID, StatusSent)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, sent.Status)

	cancelled, err := svc.Cancel(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Terminal: no further reports.
	_, err = svc.ReportStatus(ctx, doc.ID, StatusPaid)
	require.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))
}

func TestServiceTransform(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	quote := draftWithLine(TypeQuote)
	require.NoError(t, quote.AddLine(LineInput{
		Description: "Hardware", Quantity: d("2"), UnitPrice: d("50"), TaxRate: d("20"),
	}))
	require.NoError(t, svc.Create(ctx, quote))
	_, err := svc.Validate(ctx, quote.ID)
	require.NoError(t, err)

	order, err := svc.Transform(ctx, quote.ID, TypeOrder)
	require.NoError(t, err)

	assert.Equal(t, TypeOrder, order.Type)
	assert.Equal(t, StatusDraft, order.Status)
	assert.Equal(t, "ORD-2026-00001", order.Number)
	require.NotNil(t, order.ParentID)
	assert.Equal(t, quote.ID, *order.ParentID)

	// Source untouched, and its children now include the order.
	source, err := svc.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusValidated, source.Status)
	require.Len(t, source.Children, 1)
	assert.Equal(t, order.ID, source.Children[0].ID)
}

func TestServiceTransform_WrongTarget(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	doc := draftWithLine(TypeOrder)
	require.NoError(t, svc.Create(ctx, doc))
	_, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	_, err = svc.Transform(ctx, doc.ID, TypeCreditNote)
	require.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))
}

func TestServiceTransform_DraftSource(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	doc := draftWithLine(TypeQuote)
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.Transform(ctx, doc.ID, TypeOrder)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestServiceDuplicate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	doc := draftWithLine(TypeQuote)
	require.NoError(t, svc.Create(ctx, doc))
	_, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	copy, err := svc.Duplicate(ctx, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, TypeQuote, copy.Type)
	assert.Equal(t, StatusDraft, copy.Status)
	assert.Nil(t, copy.ParentID)
	assert.Equal(t, "QUO-2026-00002", copy.Number)
}

func TestServiceDelete(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	draft := draftWithLine(TypeQuote)
	require.NoError(t, svc.Create(ctx, draft))
	require.NoError(t, svc.Delete(ctx, draft.ID))

	validated := draftWithLine(TypeQuote)
	require.NoError(t, svc.Create(ctx, validated))
	_, err := svc.Validate(ctx, validated.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, validated.ID)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotEditable, appErr.Code)
}

func TestServiceListOverdue(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	pastDue := testNow.Add(-5 * 24 * time.Hour)

	overdue := draftWithLine(TypeInvoice)
	overdue.DueDate = &pastDue
	require.NoError(t, svc.Create(ctx, overdue))
	_, err := svc.Validate(ctx, overdue.ID)
	require.NoError(t, err)
	_, err = svc.ReportStatus(ctx, overdue.ID, StatusSent)
	require.NoError(t, err)

	paid := draftWithLine(TypeInvoice)
	paid.DueDate = &pastDue
	require.NoError(t, svc.Create(ctx, paid))
	_, err = svc.Validate(ctx, paid.ID)
	require.NoError(t, err)
	_, err = svc.ReportStatus(ctx, paid.ID, StatusSent)
	require.NoError(t, err)
	_, err = svc.ReportStatus(ctx, paid.ID, StatusPaid)
	require.NoError(t, err)

	result, err := svc.ListOverdue(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, overdue.ID, result.Items[0].ID)
}
