// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"mirror/internal/delivery/api/middleware"
	"mirror/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PairingHandler      *handler.PairingHandler
	SyncHandler         *handler.SyncHandler
	BusHandler          *handler.BusHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	pairingHandler      *handler.PairingHandler
	syncHandler         *handler.SyncHandler
	busHandler          *handler.BusHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		pairingHandler:      params.PairingHandler,
		syncHandler:         params.SyncHandler,
		busHandler:          params.BusHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimitMiddleware: params.RateLimitMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	// Pairing routes are unauthenticated and rate limited per IP
	groupsGroup := apiV1.Group("/groups")
	groupsGroup.Use(r.rateLimitMiddleware.Limit)
	{
		groupsGroup.POST("", r.pairingHandler.CreateGroup)
		groupsGroup.POST("/recover", r.pairingHandler.RecoverGroup)
		groupsGroup.POST("/:groupId/join", r.pairingHandler.JoinGroup)
	}

	// Routes below act on the group bound to the device token
	groupGroup := apiV1.Group("/group")
	groupGroup.Use(r.authMiddleware.Authenticate)
	{
		groupGroup.GET("", r.pairingHandler.GetGroupInfo)
		groupGroup.POST("/leave", r.pairingHandler.LeaveGroup)
		groupGroup.PUT("/plan", r.pairingHandler.UpdatePlan)
		groupGroup.GET("/qr", r.pairingHandler.PairingQR)
		groupGroup.GET("/history", r.pairingHandler.GroupHistory)
		groupGroup.PUT("/push-token", r.pairingHandler.RegisterPushToken)
	}

	syncGroup := apiV1.Group("/sync")
	syncGroup.Use(r.authMiddleware.Authenticate)
	{
		syncGroup.GET("/:dataType", r.syncHandler.Pull)
		syncGroup.PUT("/:dataType/records", r.syncHandler.PutRecord)
		syncGroup.DELETE("/:dataType/records/:id", r.syncHandler.DeleteRecord)
	}

	apiV1.GET("/bus", r.busHandler.Connect, r.authMiddleware.Authenticate)
}
