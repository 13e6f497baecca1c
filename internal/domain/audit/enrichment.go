// Package audit provides audit field enrichment for domain entities.
package audit

import (
	"context"

	appctx "github.com/MASITH-developpement/Azalscore-sub000/internal/core/context"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/entity"
)

// StampCreated sets CreatedBy and UpdatedBy from the context user.
// Use in before-create hooks. No-op when no user is attached.
func StampCreated(ctx context.Context, doc *entity.BaseDocument) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return
	}
	doc.CreatedBy = userID
	doc.UpdatedBy = userID
}

// StampUpdated sets only UpdatedBy from the context user.
// Use in before-update hooks. No-op when no user is attached.
func StampUpdated(ctx context.Context, doc *entity.BaseDocument) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return
	}
	doc.UpdatedBy = userID
}
