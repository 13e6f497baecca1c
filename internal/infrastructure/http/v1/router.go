// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/numerator"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/audit"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/catalogs/customer"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/documents/commercial"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/http/v1/handlers"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/http/v1/middleware"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/storage/postgres"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/infrastructure/storage/postgres/document_repo"
	"github.com/MASITH-developpement/Azalscore-sub000/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (also used by health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations in transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Numerator for document and catalog number generation
	Numerator numerator.Generator
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	healthHandler.RegisterRoutes(router.Group("/health"))

	// API v1 (JWT protected)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.JWTValidator))

	baseHandler := handlers.NewBaseHandler()

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewCustomerHandler(baseHandler, service)
		handler.RegisterRoutes(v1.Group("/catalog/customer"))
	}

	// --- COMMERCIAL DOCUMENTS ---
	{
		repo := document_repo.NewCommercialRepo(cfg.TxManager)
		service := commercial.NewService(repo, cfg.Numerator, cfg.TxManager, nil)
		service.Hooks().OnBeforeCreate(func(ctx context.Context, doc *commercial.Document) error {
			audit.StampCreated(ctx, &doc.BaseDocument)
			return nil
		})
		service.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *commercial.Document) error {
			audit.StampUpdated(ctx, &doc.BaseDocument)
			return nil
		})
		handler := handlers.NewCommercialHandler(baseHandler, service)
		handler.RegisterRoutes(v1.Group("/document/commercial"))
	}

	return router
}
