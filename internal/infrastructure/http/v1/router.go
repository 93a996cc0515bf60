package v1

import (
	"github.com/gin-gonic/gin"

	"stratum/internal/archive"
	"stratum/internal/domain/account"
	"stratum/internal/domain/appuser"
	"stratum/internal/domain/company"
	"stratum/internal/domain/lifecycle"
	"stratum/internal/domain/transaction"
	"stratum/internal/infrastructure/http/v1/handlers"
	"stratum/internal/infrastructure/http/v1/middleware"
	"stratum/internal/infrastructure/storage/postgres"
	"stratum/internal/infrastructure/storage/postgres/entity_repo"
	"stratum/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// TxManager runs every mutating operation in a transaction.
	TxManager *postgres.TxManager

	// Registry holds the relationship descriptors for all entity types.
	Registry *archive.Registry

	// Executor propagates archive state through the relationship tree.
	Executor *archive.Executor

	// Audit records lifecycle actions (optional).
	Audit lifecycle.Auditor

	// Logger for request logging.
	Logger *logger.Logger
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
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Registry)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	baseHandler := handlers.NewBaseHandler()

	// --- COMPANIES ---
	{
		repo := entity_repo.NewCompanyRepo(cfg.TxManager)
		service := lifecycle.NewService(lifecycle.Config[*company.Company]{
			Repo:       repo,
			TxM:        cfg.TxManager,
			Registry:   cfg.Registry,
			Executor:   cfg.Executor,
			Audit:      cfg.Audit,
			EntityName: "company",
		})
		handler := handlers.NewCompanyHandler(baseHandler, service, repo)
		RegisterEntityRoutes(api.Group("/companies"), handler)
	}

	// --- USERS ---
	{
		repo := entity_repo.NewUserRepo(cfg.TxManager)
		service := lifecycle.NewService(lifecycle.Config[*appuser.User]{
			Repo:       repo,
			TxM:        cfg.TxManager,
			Registry:   cfg.Registry,
			Executor:   cfg.Executor,
			Audit:      cfg.Audit,
			EntityName: "user",
		})
		handler := handlers.NewUserHandler(baseHandler, service, repo)
		RegisterEntityRoutes(api.Group("/users"), handler)
	}

	// --- ACCOUNTS ---
	{
		repo := entity_repo.NewAccountRepo(cfg.TxManager)
		service := lifecycle.NewService(lifecycle.Config[*account.Account]{
			Repo:       repo,
			TxM:        cfg.TxManager,
			Registry:   cfg.Registry,
			Executor:   cfg.Executor,
			Audit:      cfg.Audit,
			EntityName: "account",
		})
		handler := handlers.NewAccountHandler(baseHandler, service, repo)
		RegisterEntityRoutes(api.Group("/accounts"), handler)
	}

	// --- TRANSACTIONS ---
	{
		repo := entity_repo.NewTransactionRepo(cfg.TxManager)
		service := lifecycle.NewService(lifecycle.Config[*transaction.Transaction]{
			Repo:       repo,
			TxM:        cfg.TxManager,
			Registry:   cfg.Registry,
			Executor:   cfg.Executor,
			Audit:      cfg.Audit,
			EntityName: "transaction",
		})
		handler := handlers.NewTransactionHandler(baseHandler, service, repo)
		RegisterEntityRoutes(api.Group("/transactions"), handler)
	}

	return router
}
