// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/billfold/backend/internal/integration/entrypoint/controller"
	"github.com/billfold/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	billRuleController *controller.BillRuleController
	billController     *controller.BillController
	sweepController    *controller.SweepController
	categoryController *controller.CategoryController
	sweepRateLimiter   *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	billRuleController *controller.BillRuleController,
	billController *controller.BillController,
	sweepController *controller.SweepController,
	categoryController *controller.CategoryController,
	sweepRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:   healthController,
		billRuleController: billRuleController,
		billController:     billController,
		sweepController:    sweepController,
		categoryController: categoryController,
		sweepRateLimiter:   sweepRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Bill rule routes
		if r.billRuleController != nil {
			billRules := v1.Group("/bill-rules")
			{
				billRules.POST("", r.billRuleController.Create)
				billRules.GET("", r.billRuleController.List)
				billRules.GET("/:id", r.billRuleController.Get)
				billRules.PATCH("/:id", r.billRuleController.Update)
			}
		}

		// Bill routes
		if r.billController != nil {
			bills := v1.Group("/bills")
			{
				bills.POST("", r.billController.Create)
				bills.GET("", r.billController.List)
				bills.GET("/:id", r.billController.Get)
				bills.POST("/:id/pay", r.billController.Pay)
				bills.POST("/:id/payments", r.billController.RecordPayment)
			}
		}

		// Sweep routes. Rate limited since each sweep walks the full
		// candidate set.
		if r.sweepController != nil && r.sweepRateLimiter != nil {
			sweeps := v1.Group("/sweeps")
			sweeps.Use(r.sweepRateLimiter.Middleware())
			{
				sweeps.POST("/overdue", r.sweepController.Overdue)
				sweeps.POST("/generate", r.sweepController.Generate)
			}
		}

		// Category routes
		if r.categoryController != nil {
			categories := v1.Group("/categories")
			{
				categories.POST("", r.categoryController.Create)
				categories.GET("", r.categoryController.List)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
