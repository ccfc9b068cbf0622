// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finledger/backend/internal/integration/entrypoint/controller"
	"github.com/finledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                  *gin.Engine
	healthController        *controller.HealthController
	recurringRuleController *controller.RecurringRuleController
	authMiddleware          *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	recurringRuleController *controller.RecurringRuleController,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:        healthController,
		recurringRuleController: recurringRuleController,
		authMiddleware:          authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

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
	v1 := r.engine.Group("/api/v1")
	{
		if r.recurringRuleController != nil && r.authMiddleware != nil {
			rules := v1.Group("/recurring-rules")
			rules.Use(r.authMiddleware.Authenticate())
			{
				// Fixed paths before :id so "preview" and "run" don't bind as IDs
				rules.GET("/preview", r.recurringRuleController.Preview)
				rules.POST("/run", r.recurringRuleController.Run)

				rules.GET("", r.recurringRuleController.List)
				rules.POST("", r.recurringRuleController.Create)
				rules.GET("/:id", r.recurringRuleController.Get)
				rules.PATCH("/:id", r.recurringRuleController.Update)
				rules.DELETE("/:id", r.recurringRuleController.Delete)

				rules.POST("/:id/materialize", r.recurringRuleController.Materialize)
				rules.POST("/:id/split", r.recurringRuleController.Split)
				rules.POST("/:id/ignore", r.recurringRuleController.Ignore)
				rules.POST("/:id/undo-ignore", r.recurringRuleController.UndoIgnore)
			}
		}
	}
}
