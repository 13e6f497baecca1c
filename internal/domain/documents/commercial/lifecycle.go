package commercial

import (
	"math"
	"time"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
)

// Lifecycle predicates. All are pure functions of the document value and,
// where dates matter, an explicit wall-clock instant supplied by the caller
// (the service injects its clock so tests stay deterministic).

// CanEdit reports whether fields and lines may still be mutated.
func (d *Document) CanEdit() bool {
	return d.Status.Editable()
}

// CanValidate reports whether the validate action is currently legal:
// the document is a draft with at least one complete line.
func (d *Document) CanValidate() bool {
	return d.checkValidatable() == nil
}

// CanTransform reports whether the document may spawn a child via the
// transform registry: it is validated and its type has a configured target.
func (d *Document) CanTransform() bool {
	if d.Status != StatusValidated {
		return false
	}
	_, ok := TransitionFor(d.Type)
	return ok
}

// CanCancel reports whether the document may still be cancelled.
// Everything short of paid and cancelled can be.
func (d *Document) CanCancel() bool {
	return d.Status != StatusCancelled && d.Status != StatusPaid
}

// DaysUntilDue returns the whole days remaining until the due date (ceiling,
// may be negative), or nil when no due date is set. Nil is an answer, not an
// error: a quote simply has no payment deadline.
func (d *Document) DaysUntilDue(now time.Time) *int {
	if d.DueDate == nil {
		return nil
	}
	days := int(math.Ceil(d.DueDate.Sub(now).Hours() / 24))
	return &days
}

// IsOverdue reports whether the due date has passed while the document is
// still in a receivable, non-terminal status. Paid and cancelled documents
// are never overdue.
func (d *Document) IsOverdue(now time.Time) bool {
	if d.Status == StatusPaid || d.Status == StatusCancelled {
		return false
	}
	days := d.DaysUntilDue(now)
	return days != nil && *days < 0
}

// checkValidatable returns the detailed reason a validate would fail.
func (d *Document) checkValidatable() error {
	if d.Status != StatusDraft {
		return apperror.NewIllegalTransition("only draft documents can be validated").
			WithDetail("status", string(d.Status))
	}

	if len(d.Lines) == 0 {
		return apperror.NewValidation("cannot validate a document without lines").
			WithDetail("field", "lines")
	}

	for i, line := range d.Lines {
		if line.Description == "" {
			return apperror.NewValidation("line description is required").
				WithDetail("field", "lines").
				WithDetail("line_no", i+1)
		}
	}

	return nil
}

// MarkValidated performs the validate transition: draft to validated.
// Fails with a descriptive error when the document has no lines or an
// incomplete line; it is never a silent no-op.
func (d *Document) MarkValidated(now time.Time) error {
	if err := d.checkValidatable(); err != nil {
		return err
	}

	d.Status = StatusValidated
	if d.ValidatedAt == nil {
		t := now
		d.ValidatedAt = &t
	}
	return nil
}

// ReportStatus records a status reported by the external workflow
// ("customer accepted", "payment received"). The engine decides only whether
// the move is admissible from the current status; it never decides when.
func (d *Document) ReportStatus(to Status, now time.Time) error {
	if !to.Valid() {
		return apperror.NewValidation("unknown document status").
			WithDetail("field", "status").
			WithDetail("value", string(to))
	}

	if !CanReport(d.Status, to) {
		return apperror.NewIllegalTransition("status change not permitted").
			WithDetail("from", string(d.Status)).
			WithDetail("to", string(to))
	}

	d.Status = to
	switch to {
	case StatusSent:
		if d.SentAt == nil {
			t := now
			d.SentAt = &t
		}
	case StatusPaid:
		if d.PaidAt == nil {
			t := now
			d.PaidAt = &t
		}
	}
	return nil
}

// MarkCancelled performs the cancel transition. Terminal.
func (d *Document) MarkCancelled(now time.Time) error {
	if !d.CanCancel() {
		return apperror.NewIllegalTransition("document cannot be cancelled").
			WithDetail("status", string(d.Status))
	}

	d.Status = StatusCancelled
	if d.CancelledAt == nil {
		t := now
		d.CancelledAt = &t
	}
	return nil
}
