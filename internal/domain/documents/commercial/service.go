// Package commercial provides the commercial document service.
package commercial

import (
	"context"
	"fmt"
	"time"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/numerator"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/tx"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain"
	"github.com/MASITH-developpement/Azalscore-sub000/pkg/logger"
)

// Clock supplies "now" for due-date checks and lifecycle stamps.
// Injecting it keeps overdue logic deterministic under test.
type Clock func() time.Time

// numberingFor maps a document type to its numbering prefix and strategy.
// Invoices and credit notes need gapless sequences (accounting documents);
// the rest tolerate gaps and use the faster cached strategy.
func numberingFor(t DocumentType) (numerator.Config, *numerator.Options) {
	var prefix string
	strategy := numerator.StrategyCached

	switch t {
	case TypeQuote:
		prefix = "QUO"
	case TypeOrder:
		prefix = "ORD"
	case TypeInvoice:
		prefix = "INV"
		strategy = numerator.StrategyStrict
	case TypeCreditNote:
		prefix = "CRN"
		strategy = numerator.StrategyStrict
	case TypeProforma:
		prefix = "PRO"
	case TypeDelivery:
		prefix = "DLV"
	default:
		prefix = "DOC"
	}

	return numerator.DefaultConfig(prefix), &numerator.Options{Strategy: strategy}
}

// Service provides business operations for commercial documents.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Document]
	clock     Clock
}

// NewService creates a new commercial document service.
// A nil clock defaults to time.Now in UTC.
func NewService(
	repo Repository,
	numerator numerator.Generator,
	txManager tx.Manager,
	clock Clock,
) *Service {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		repo:      repo,
		numerator: numerator,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Document](),
		clock:     clock,
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Document] {
	return s.hooks
}

// Create creates a new document. Documents are always created as drafts;
// a submitted status is rejected rather than silently downgraded.
func (s *Service) Create(ctx context.Context, doc *Document) error {
	if doc.Status == "" {
		doc.Status = StatusDraft
	}
	if doc.Status != StatusDraft {
		return apperror.NewValidation("documents are created as drafts").
			WithDetail("field", "status").
			WithDetail("value", string(doc.Status))
	}

	// Run before-create hooks (for enrichment, validation, etc.)
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Generate number if empty
	if doc.Number == "" {
		cfg, opts := numberingFor(doc.Type)
		number, err := s.numerator.GetNextNumber(ctx, cfg, opts, s.clock())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "document created",
		"id", doc.ID,
		"type", doc.Type,
		"number", doc.Number)

	return nil
}

// GetByID retrieves a document with its lines and children.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	children, err := s.repo.GetChildren(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get children: %w", err)
	}
	doc.Children = children

	return doc, nil
}

// Update updates a draft document. Anything past draft is frozen.
func (s *Service) Update(ctx context.Context, doc *Document) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if !doc.CanEdit() {
		return apperror.NewNotEditable(doc.ID.String(), string(doc.Status))
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterUpdate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}

	return nil
}

// Delete soft-deletes a draft document. Documents that left draft are part
// of the audit trail and can only be cancelled.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if !doc.CanEdit() {
		return apperror.NewBusinessRule(
			apperror.CodeNotEditable,
			"Only draft documents can be deleted. Cancel instead.",
		).WithDetail("document_id", docID.String()).WithDetail("status", string(doc.Status))
	}

	if err := s.hooks.RunBeforeDelete(ctx, doc); err != nil {
		return err
	}

	return s.repo.Delete(ctx, docID)
}

// Validate performs the draft-to-validated transition, freezing the lines.
func (s *Service) Validate(ctx context.Context, docID id.ID) (*Document, error) {
	return s.transition(ctx, docID, "document validated", func(doc *Document) error {
		return doc.MarkValidated(s.clock())
	})
}

// ReportStatus records a workflow-reported status (sent, accepted, paid, ...).
func (s *Service) ReportStatus(ctx context.Context, docID id.ID, to Status) (*Document, error) {
	return s.transition(ctx, docID, "document status reported", func(doc *Document) error {
		return doc.ReportStatus(to, s.clock())
	})
}

// Cancel cancels a document. Terminal.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*Document, error) {
	return s.transition(ctx, docID, "document cancelled", func(doc *Document) error {
		return doc.MarkCancelled(s.clock())
	})
}

// transition loads a document under lock, applies fn and persists the result.
func (s *Service) transition(ctx context.Context, docID id.ID, logMsg string, fn func(*Document) error) (*Document, error) {
	var doc *Document

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines

		if err := fn(doc); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, logMsg,
		"id", doc.ID,
		"number", doc.Number,
		"status", doc.Status)

	return doc, nil
}

// Transform builds and persists the child document a validated source
// transforms into (quote to order, order to invoice, ...). The source keeps
// its status and lines; only its set of children grows.
func (s *Service) Transform(ctx context.Context, docID id.ID, target DocumentType) (*Document, error) {
	source, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	child, err := BuildTransform(source, target, s.clock())
	if err != nil {
		return nil, err
	}

	if err := s.Create(ctx, child); err != nil {
		return nil, err
	}

	logger.Info(ctx, "document transformed",
		"source_id", source.ID,
		"source_number", source.Number,
		"child_id", child.ID,
		"child_type", child.Type)

	return child, nil
}

// Duplicate creates a same-type draft copy of any document.
func (s *Service) Duplicate(ctx context.Context, docID id.ID) (*Document, error) {
	source, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	copy, err := BuildDuplicate(source, s.clock())
	if err != nil {
		return nil, err
	}

	if err := s.Create(ctx, copy); err != nil {
		return nil, err
	}

	return copy, nil
}

// List retrieves documents with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Document], error) {
	return s.repo.List(ctx, filter)
}

// ListOverdue retrieves non-terminal documents whose due date has passed.
func (s *Service) ListOverdue(ctx context.Context, filter ListFilter) (domain.ListResult[*Document], error) {
	now := s.clock()
	filter.OverdueAsOf = &now
	return s.repo.List(ctx, filter)
}
