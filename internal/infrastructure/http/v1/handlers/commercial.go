package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/documents/commercial"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/http/v1/dto"
)

// CommercialHandler handles HTTP requests for commercial documents.
type CommercialHandler struct {
	*BaseHandler
	service *commercial.Service
}

// NewCommercialHandler creates a new commercial document handler.
func NewCommercialHandler(base *BaseHandler, service *commercial.Service) *CommercialHandler {
	return &CommercialHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /document/commercial.
func (h *CommercialHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCommercialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCommercial(doc))
}

// Get handles GET /document/commercial/:id.
// The response carries lines and direct children.
func (h *CommercialHandler) Get(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCommercial(doc))
}

// Update handles PUT /document/commercial/:id. Draft documents only.
func (h *CommercialHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateCommercialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(doc); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCommercial(doc))
}

// Delete handles DELETE /document/commercial/:id. Draft documents only.
func (h *CommercialHandler) Delete(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /document/commercial with filters.
// ?overdue=true narrows to open documents past their due date.
func (h *CommercialHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := commercial.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("order_by", "date DESC")
	filter.IncludeDeleted = c.Query("include_deleted") == "true"

	if docType := c.Query("type"); docType != "" {
		parsed, err := commercial.ParseDocumentType(docType)
		if err != nil {
			h.Error(c, err)
			return
		}
		filter.Type = &parsed
	}

	if status := c.Query("status"); status != "" {
		parsed, err := commercial.ParseStatus(status)
		if err != nil {
			h.Error(c, err)
			return
		}
		filter.Status = &parsed
	}

	if customerID := c.Query("customer_id"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err == nil {
			filter.CustomerID = &parsed
		}
	}

	if parentID := c.Query("parent_id"); parentID != "" {
		parsed, err := id.Parse(parentID)
		if err == nil {
			filter.ParentID = &parsed
		}
	}

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("date_to"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	var (
		result domain.ListResult[*commercial.Document]
		err    error
	)
	if c.Query("overdue") == "true" {
		result, err = h.service.ListOverdue(ctx, filter)
	} else {
		result, err = h.service.List(ctx, filter)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	h.respondList(c, result)
}

// Validate handles POST /document/commercial/:id/validate.
func (h *CommercialHandler) Validate(c *gin.Context) {
	h.transition(c, h.service.Validate)
}

// Cancel handles POST /document/commercial/:id/cancel.
func (h *CommercialHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// ReportStatus handles POST /document/commercial/:id/status.
func (h *CommercialHandler) ReportStatus(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ReportStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	status, err := commercial.ParseStatus(req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.ReportStatus(c.Request.Context(), docID, status)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCommercial(doc))
}

// Transform handles POST /document/commercial/:id/transform.
// Creates a draft descendant of the requested type linked to the source.
func (h *CommercialHandler) Transform(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.TransformRequest
	if !h.BindJSON(c, &req) {
		return
	}

	target, err := commercial.ParseDocumentType(req.TargetType)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.Transform(c.Request.Context(), docID, target)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCommercial(doc))
}

// Duplicate handles POST /document/commercial/:id/duplicate.
func (h *CommercialHandler) Duplicate(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.Duplicate(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCommercial(doc))
}

func (h *CommercialHandler) transition(c *gin.Context, fn func(ctx context.Context, docID id.ID) (*commercial.Document, error)) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := fn(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCommercial(doc))
}

func (h *CommercialHandler) respondList(c *gin.Context, result domain.ListResult[*commercial.Document]) {
	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromCommercialList(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers commercial document routes.
func (h *CommercialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	rg.POST("/:id/validate", h.Validate)
	rg.POST("/:id/cancel", h.Cancel)
	rg.POST("/:id/status", h.ReportStatus)
	rg.POST("/:id/transform", h.Transform)
	rg.POST("/:id/duplicate", h.Duplicate)
}
