package commercial

import (
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
)

// Status is a node in the document status lattice.
// Different document types use different subsets; the engine enforces
// admissibility of moves, not a per-type transition graph.
type Status string

const (
	// StatusDraft is the initial status. A document is editable iff draft.
	StatusDraft Status = "draft"

	// StatusValidated is reached via the validate action; lines are frozen.
	StatusValidated Status = "validated"

	// Statuses reported by the external workflow once a document is validated.
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusDelivered Status = "delivered"
	StatusInvoiced  Status = "invoiced"

	// Terminal statuses. No further change is permitted past these.
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Statuses lists all known statuses.
var Statuses = []Status{
	StatusDraft, StatusPending, StatusValidated, StatusSent, StatusAccepted,
	StatusRejected, StatusDelivered, StatusInvoiced, StatusPaid, StatusCancelled,
}

// ParseStatus converts a wire tag to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", apperror.NewValidation("unknown document status").
			WithDetail("field", "status").
			WithDetail("value", s)
	}
	return st, nil
}

// Valid reports whether the status is one of the known tags.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusValidated, StatusSent, StatusAccepted,
		StatusRejected, StatusDelivered, StatusInvoiced, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further change.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Editable reports whether field and line mutation is permitted.
// This is the single source of truth for editability.
func (s Status) Editable() bool {
	return s == StatusDraft
}

// Reportable reports whether the status is one the external workflow may
// report onto a validated document (customer accepted, payment received, ...).
func (s Status) Reportable() bool {
	switch s {
	case StatusPending, StatusSent, StatusAccepted, StatusRejected,
		StatusDelivered, StatusInvoiced, StatusPaid:
		return true
	}
	return false
}

// receivable statuses from which a payment may be recorded.
func (s Status) receivable() bool {
	return s == StatusSent || s == StatusInvoiced
}

// CanReport decides whether the workflow may move a document from one status
// to another. It covers only reported statuses; validate and cancel have
// their own paths (MarkValidated, MarkCancelled).
func CanReport(from, to Status) bool {
	if !to.Reportable() || from.IsTerminal() {
		return false
	}
	// A draft must be validated first; a rejected document is a dead branch
	// (it can only be cancelled or duplicated).
	if from == StatusDraft || from == StatusRejected {
		return false
	}
	// Payment requires the document to be a receivable.
	if to == StatusPaid && !from.receivable() {
		return false
	}
	return true
}
