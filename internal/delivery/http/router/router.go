// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ecoroute/internal/delivery/http/middleware"
	"ecoroute/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	TripHandler    *handler.TripHandler
	FleetHandler   *handler.FleetHandler
	HealthHandler  *handler.HealthHandler
	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	tripHandler    *handler.TripHandler
	fleetHandler   *handler.FleetHandler
	healthHandler  *handler.HealthHandler
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		tripHandler:    params.TripHandler,
		fleetHandler:   params.FleetHandler,
		healthHandler:  params.HealthHandler,
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Service endpoints
	e.GET("/", handler.Root)
	e.GET("/health", r.healthHandler.HealthCheck)

	api := e.Group("/api")

	// Token issuing for fleet-admin mutations
	api.POST("/auth/token", r.authHandler.IssueToken)

	// Route calculation
	routeGroup := api.Group("/routes")
	{
		routeGroup.POST("/calculate", r.tripHandler.CalculateRoute)
		routeGroup.GET("/history", r.tripHandler.History)
	}

	// Fleet management; mutations require authentication
	orgGroup := api.Group("/organizations")
	{
		orgGroup.GET("", r.fleetHandler.ListOrganizations)
		orgGroup.POST("", r.fleetHandler.CreateOrganization, r.authMiddleware.Authenticate)
		orgGroup.GET("/:id/vehicles", r.fleetHandler.ListVehicles)
	}

	api.POST("/vehicles", r.fleetHandler.CreateVehicle, r.authMiddleware.Authenticate)
}
