// Package v1 provides HTTP API version 1.
package v1

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"platedepot/internal/core/types"
	"platedepot/internal/domain/catalogs/client"
	"platedepot/internal/domain/documents/bill"
	"platedepot/internal/domain/documents/issue_challan"
	"platedepot/internal/domain/documents/return_challan"
	"platedepot/internal/domain/reports"
	"platedepot/internal/infrastructure/http/v1/handlers"
	"platedepot/internal/infrastructure/http/v1/middleware"
	"platedepot/internal/infrastructure/storage/postgres"
	"platedepot/internal/infrastructure/storage/postgres/catalog_repo"
	"platedepot/internal/infrastructure/storage/postgres/document_repo"
	"platedepot/internal/infrastructure/storage/postgres/report_repo"
	"platedepot/pkg/logger"
	"platedepot/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager manages database transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Numerator for document number generation
	Numerator *numerator.Service

	// DefaultDailyRate is applied to new clients created without a rate
	DefaultDailyRate types.Money

	// Audit records entity change history
	Audit *postgres.AuditService

	// IdempotencyEnabled enables idempotency middleware on mutating endpoints
	IdempotencyEnabled bool

	// IdempotencyTTL is how long completed keys are replayable
	IdempotencyTTL time.Duration
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

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")

	if cfg.IdempotencyEnabled {
		ttl := cfg.IdempotencyTTL
		if ttl <= 0 {
			ttl = 10 * time.Minute
		}
		store := postgres.NewIdempotencyStore(cfg.TxManager, ttl)
		v1.Use(middleware.Idempotency(store))
	}

	baseHandler := handlers.NewBaseHandler()

	// --- CLIENTS ---
	clientRepo := catalog_repo.NewClientRepo(cfg.TxManager)
	clientSvc := client.NewService(clientRepo, cfg.Numerator, cfg.TxManager)
	if cfg.DefaultDailyRate.IsPositive() {
		clientSvc.Hooks().OnBeforeCreate(func(ctx context.Context, c *client.Client) error {
			if c.DailyRate.IsZero() {
				c.DailyRate = cfg.DefaultDailyRate
			}
			return nil
		})
	}
	registerClientAudit(clientSvc, cfg.Audit)

	clientHandler := handlers.NewClientHandler(baseHandler, clientSvc)
	clientHandler.RegisterRoutes(v1.Group("/catalog/clients"))

	// --- CHALLANS ---
	issueRepo := document_repo.NewIssueChallanRepo(cfg.TxManager)
	issueSvc := issue_challan.NewService(issueRepo, cfg.Numerator, cfg.TxManager)
	issueHandler := handlers.NewIssueChallanHandler(baseHandler, issueSvc, cfg.Audit)
	issueHandler.RegisterRoutes(v1.Group("/document/issue-challans"))

	returnRepo := document_repo.NewReturnChallanRepo(cfg.TxManager)
	returnSvc := return_challan.NewService(returnRepo, cfg.Numerator, cfg.TxManager)
	returnHandler := handlers.NewReturnChallanHandler(baseHandler, returnSvc, cfg.Audit)
	returnHandler.RegisterRoutes(v1.Group("/document/return-challans"))

	// --- BILLING ---
	billRepo := document_repo.NewBillRepo(cfg.TxManager)
	billSvc := bill.NewService(clientSvc, issueSvc, returnSvc, billRepo, cfg.Numerator, cfg.TxManager)
	billingHandler := handlers.NewBillingHandler(baseHandler, billSvc, clientSvc, cfg.Audit)
	billingHandler.RegisterRoutes(v1.Group("/billing"))

	// --- REPORTS ---
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportSvc := reports.NewService(reportRepo)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportSvc)
	reportHandler.RegisterRoutes(v1.Group("/reports"))

	return router
}

// registerClientAudit wires change history hooks into the client catalog.
func registerClientAudit(svc *client.Service, audit *postgres.AuditService) {
	if audit == nil {
		return
	}

	svc.Hooks().OnAfterCreate(func(ctx context.Context, c *client.Client) error {
		_ = audit.LogChange(ctx, "client", c.ID, postgres.AuditActionCreate, map[string]any{"after": c})
		return nil
	})
	svc.Hooks().OnAfterUpdate(func(ctx context.Context, c *client.Client) error {
		_ = audit.LogChange(ctx, "client", c.ID, postgres.AuditActionUpdate, map[string]any{"after": c})
		return nil
	})
	svc.Hooks().OnAfterDelete(func(ctx context.Context, c *client.Client) error {
		_ = audit.LogChange(ctx, "client", c.ID, postgres.AuditActionDelete, nil)
		return nil
	})
}
