package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/catalogs/customer"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles HTTP requests for the customer catalog.
type CustomerHandler struct {
	*BaseHandler
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/customer.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCustomer(entity))
}

// Get handles GET /catalog/customer/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCustomer(entity))
}

// GetByCode handles GET /catalog/customer/by-code/:code.
func (h *CustomerHandler) GetByCode(c *gin.Context) {
	entity, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCustomer(entity))
}

// Update handles PUT /catalog/customer/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(entity)

	if err := h.service.Update(ctx, entity); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCustomer(entity))
}

// Delete handles DELETE /catalog/customer/:id (sets the deletion mark).
func (h *CustomerHandler) Delete(c *gin.Context) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// SetDeletionMark handles POST /catalog/customer/:id/deletion-mark.
func (h *CustomerHandler) SetDeletionMark(c *gin.Context) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetDeletionMark(c.Request.Context(), entityID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "deletion mark updated")
}

// List handles GET /catalog/customer.
// ?vat_number=... performs an exact VAT lookup instead of a page scan.
func (h *CustomerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if vat := c.Query("vat_number"); vat != "" {
		entity, err := h.service.FindByVAT(ctx, vat)
		if err != nil {
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ListResponse{
			Items:      dto.FromCustomerList([]*customer.Customer{entity}),
			TotalCount: 1,
			Limit:      1,
			Offset:     0,
		})
		return
	}

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("order_by", "name")
	filter.IncludeDeleted = c.Query("include_deleted") == "true"

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromCustomerList(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers customer catalog routes.
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.GET("/by-code/:code", h.GetByCode)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/deletion-mark", h.SetDeletionMark)
}
