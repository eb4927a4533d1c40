package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	billingApp "github.com/cloudesk-io/cloudesk/internal/application/billing"
	entitlementApp "github.com/cloudesk-io/cloudesk/internal/application/entitlement"
	orderApp "github.com/cloudesk-io/cloudesk/internal/application/order"
	settingApp "github.com/cloudesk-io/cloudesk/internal/application/setting"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/auth"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/cache"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/config"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/email"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/repository"
	"github.com/cloudesk-io/cloudesk/internal/interfaces/http/handlers"
	"github.com/cloudesk-io/cloudesk/internal/interfaces/http/middleware"
	shareddb "github.com/cloudesk-io/cloudesk/internal/shared/db"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// Router wires infrastructure, application services and HTTP handlers
// into a gin engine.
type Router struct {
	engine             *gin.Engine
	cfg                *config.Config
	orderHandler       *handlers.OrderHandler
	entitlementHandler *handlers.EntitlementHandler
	billingHandler     *handlers.BillingHandler
	settingHandler     *handlers.SettingHandler
	catalogHandler     *handlers.CatalogHandler
	authMiddleware     *middleware.AuthMiddleware
	logger             logger.Interface
}

// NewRouter builds the full dependency graph from the database handle
// and configuration.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	orderRepo := repository.NewOrderRepository(db, log)
	entitlementRepo := repository.NewEntitlementRepository(db, log)
	companyRepo := repository.NewCompanyRepository(db, log)
	activityRepo := repository.NewActivityRepository(db, log)
	catalogRepo := repository.NewServiceCatalogRepository(db, log)
	settingRepo := repository.NewSystemSettingRepository(db, log)

	txMgr := shareddb.NewTransactionManager(db)

	var policyCache cache.ValidationPolicyCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		policyCache = cache.NewRedisValidationPolicyCache(client, log)
	} else {
		policyCache = cache.NewNoopValidationPolicyCache()
	}
	policyProvider := cache.NewSettingPolicyProvider(settingRepo, policyCache, log)

	var notifier email.Notifier
	if cfg.Email.Enabled {
		notifier = email.NewSMTPNotifier(&cfg.Email, log)
	} else {
		notifier = email.NewNoopNotifier()
	}

	orderService := orderApp.NewService(orderRepo, catalogRepo, companyRepo, entitlementRepo, activityRepo, txMgr, notifier, log)
	entitlementService := entitlementApp.NewService(entitlementRepo, catalogRepo, companyRepo, activityRepo, policyProvider, txMgr, notifier, log)
	billingService := billingApp.NewService(entitlementRepo, companyRepo, log)
	settingService := settingApp.NewService(settingRepo, policyCache, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	return &Router{
		engine:             engine,
		cfg:                cfg,
		orderHandler:       handlers.NewOrderHandler(orderService, log),
		entitlementHandler: handlers.NewEntitlementHandler(entitlementService, log),
		billingHandler:     handlers.NewBillingHandler(billingService, log),
		settingHandler:     handlers.NewSettingHandler(settingService, log),
		catalogHandler:     handlers.NewCatalogHandler(catalogRepo, log),
		authMiddleware:     middleware.NewAuthMiddleware(jwtService, log),
		logger:             log,
	}
}

// SetupRoutes registers middleware and all API routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		v1.GET("/services", r.catalogHandler.ListServices)

		orders := v1.Group("/orders")
		{
			orders.POST("", r.orderHandler.CreateOrder)
			orders.GET("/:sid", r.orderHandler.GetOrder)
			orders.POST("/:sid/confirm", r.authMiddleware.RequireAdmin(), r.orderHandler.ConfirmOrder)
			orders.POST("/:sid/reject", r.authMiddleware.RequireAdmin(), r.orderHandler.RejectOrder)
		}

		entitlements := v1.Group("/entitlements")
		{
			entitlements.POST("", r.entitlementHandler.AddService)
			entitlements.GET("/pending", r.authMiddleware.RequireAdmin(), r.entitlementHandler.ListPendingEntitlements)
			entitlements.POST("/:sid/approve", r.authMiddleware.RequireAdmin(), r.entitlementHandler.ApproveEntitlement)
			entitlements.POST("/:sid/reject", r.authMiddleware.RequireAdmin(), r.entitlementHandler.RejectEntitlement)
			entitlements.POST("/:sid/suspend", r.entitlementHandler.SuspendEntitlement)
			entitlements.POST("/:sid/resume", r.entitlementHandler.ResumeEntitlement)
			entitlements.PATCH("/:sid/price", r.authMiddleware.RequireAdmin(), r.entitlementHandler.UpdatePrice)
			entitlements.POST("/:sid/users", r.entitlementHandler.AddUser)
			entitlements.DELETE("/:sid/users/:userID", r.entitlementHandler.RemoveUser)
			entitlements.DELETE("/:sid", r.entitlementHandler.CancelEntitlement)
		}

		companies := v1.Group("/companies")
		{
			companies.GET("/:sid/orders", r.orderHandler.ListCompanyOrders)
			companies.GET("/:sid/entitlements", r.entitlementHandler.ListCompanyEntitlements)
			companies.GET("/:sid/revenue", r.billingHandler.CompanyRevenue)
			companies.GET("/:sid/revenue/reconcile", r.authMiddleware.RequireAdmin(), r.billingHandler.ReconcileRevenue)
			companies.GET("/:sid/usage", r.billingHandler.CompanyUsage)
			companies.GET("/:sid/invoice-inputs", r.billingHandler.InvoiceInputs)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.RequireAdmin())
		{
			admin.GET("/settings/provisioning", r.settingHandler.GetValidationPolicy)
			admin.PUT("/settings/provisioning", r.settingHandler.SetValidationPolicy)
		}
	}
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
