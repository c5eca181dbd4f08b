package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "github.com/networkasro/backoffice/docs"
	"github.com/networkasro/backoffice/internal/api/handler"
	"github.com/networkasro/backoffice/internal/api/middleware"
	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// Services bundles the use-case implementations the router exposes.
// They are constructed in main so the dispatcher and scheduler can share
// the same instances.
type Services struct {
	Auth        ports.AuthService
	Profiles    ports.ProfileRepository
	Customers   ports.CustomerService
	Plans       ports.PlanService
	Invoices    ports.InvoiceService
	Commissions ports.CommissionService
	Content     ports.ContentService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, db *gorm.DB, mdb *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	adminUserHandler := handler.NewAdminUserHandler(svc.Auth, svc.Profiles)
	customerHandler := handler.NewCustomerHandler(svc.Customers)
	planHandler := handler.NewPlanHandler(svc.Plans)
	invoiceHandler := handler.NewInvoiceHandler(svc.Invoices)
	commissionHandler := handler.NewCommissionHandler(svc.Commissions)
	contentHandler := handler.NewContentHandler(svc.Content)

	auth := middleware.Auth(jwtSecret)
	adminOnly := middleware.MinRole(domain.RoleAdmin)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, mdb, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Auth (no token required) ---
	v1.POST("/auth/signup", authHandler.SignUp)
	v1.POST("/auth/signin", authHandler.SignIn)
	v1.POST("/auth/refresh", authHandler.Refresh)
	v1.POST("/auth/signout", authHandler.SignOut)
	v1.GET("/auth/profile", authHandler.Profile, auth)

	// --- Public content reads ---
	v1.GET("/content/pages", contentHandler.PublicPages)
	v1.GET("/content/pages/:slug", contentHandler.PublicPageBySlug)
	v1.GET("/content/sliders", contentHandler.PublicSliders)
	v1.GET("/content/settings", contentHandler.PublicSettings)

	// --- Customers (any authenticated role, sales scoped by service) ---
	customers := v1.Group("/customers", auth)
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/count", customerHandler.Count)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete, adminOnly)

	// --- Plans (reads open to all roles, writes admin) ---
	plans := v1.Group("/plans", auth)
	plans.GET("", planHandler.List)
	plans.GET("/:id", planHandler.Get)
	plans.POST("", planHandler.Create, adminOnly)
	plans.PUT("/:id", planHandler.Update, adminOnly)
	plans.DELETE("/:id", planHandler.Delete, adminOnly)

	// --- Invoices ---
	invoices := v1.Group("/invoices", auth)
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.POST("/:id/pay", invoiceHandler.MarkPaid)
	invoices.POST("/generate", invoiceHandler.Generate, adminOnly)
	invoices.POST("/:id/verify", invoiceHandler.Verify, adminOnly)
	invoices.POST("/:id/revert", invoiceHandler.Revert, adminOnly)

	// --- Commissions ---
	commissions := v1.Group("/commissions", auth)
	commissions.GET("", commissionHandler.List)
	commissions.GET("/total", commissionHandler.Total)
	commissions.POST("/:id/pay", commissionHandler.MarkPaid, adminOnly)
	commissions.GET("/settings", commissionHandler.ListSettings, adminOnly)
	commissions.PUT("/settings", commissionHandler.SetSetting, adminOnly)
	commissions.DELETE("/settings/:id", commissionHandler.DeleteSetting, adminOnly)

	// --- Admin surface ---
	admin := v1.Group("/admin", auth, adminOnly)
	admin.POST("/users", adminUserHandler.Create)
	admin.GET("/users", adminUserHandler.List)
	admin.PUT("/users/:id", adminUserHandler.Update)

	admin.GET("/content/pages", contentHandler.AdminPages)
	admin.POST("/content/pages", contentHandler.CreatePage)
	admin.PUT("/content/pages/:id", contentHandler.UpdatePage)
	admin.DELETE("/content/pages/:id", contentHandler.DeletePage)

	admin.GET("/content/sliders", contentHandler.AdminSliders)
	admin.POST("/content/sliders", contentHandler.CreateSlider)
	admin.PUT("/content/sliders/:id", contentHandler.UpdateSlider)
	admin.DELETE("/content/sliders/:id", contentHandler.DeleteSlider)

	admin.PUT("/content/settings", contentHandler.UpdateSettings)

	return e
}
