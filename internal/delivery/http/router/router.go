// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"muziris/internal/delivery/http/middleware"
	"muziris/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	MembershipHandler *handler.MembershipHandler
	AuthHandler       *handler.AuthHandler
	AdminHandler      *handler.AdminHandler
	StorefrontHandler *handler.StorefrontHandler
	MemberHandler     *handler.MemberHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	membershipHandler *handler.MembershipHandler
	authHandler       *handler.AuthHandler
	adminHandler      *handler.AdminHandler
	storefrontHandler *handler.StorefrontHandler
	memberHandler     *handler.MemberHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		membershipHandler: params.MembershipHandler,
		authHandler:       params.AuthHandler,
		adminHandler:      params.AdminHandler,
		storefrontHandler: params.StorefrontHandler,
		memberHandler:     params.MemberHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public membership lifecycle
	membershipGroup := e.Group("/membership")
	{
		membershipGroup.POST("/apply", r.membershipHandler.Apply)
		membershipGroup.GET("/verify", r.membershipHandler.VerifyEmail)
	}

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login/start", r.authHandler.LoginStart)
		authGroup.POST("/setup-password", r.authHandler.SetupPassword)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/login-link", r.authHandler.RequestLoginLink)
		authGroup.POST("/login-link/complete", r.authHandler.CompleteLoginLink)
		authGroup.POST("/admin-link", r.authHandler.RequestAdminLoginLink)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Member routes that require authentication
	memberGroup := e.Group("/member")
	memberGroup.Use(r.authMiddleware.Authenticate)
	{
		memberGroup.GET("/dashboard", r.memberHandler.GetDashboard)
		memberGroup.GET("/spices", r.storefrontHandler.ListSpices)
		memberGroup.GET("/cart", r.storefrontHandler.GetCart)
		memberGroup.POST("/cart/items", r.storefrontHandler.AddItem)
		memberGroup.PATCH("/cart/items/:spiceID", r.storefrontHandler.SetQuantity)
		memberGroup.POST("/checkout", r.storefrontHandler.Checkout)
		memberGroup.GET("/orders", r.storefrontHandler.ListOrders)
		memberGroup.POST("/orders/:orderID/confirm-payment", r.storefrontHandler.ConfirmPayment)
		memberGroup.GET("/orders/:orderID/payment-qr", r.storefrontHandler.PaymentQR)
	}

	// Admin routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole("admin"))
	{
		adminGroup.GET("/requests", r.adminHandler.ListRequests)
		adminGroup.POST("/requests/:id/approve", r.adminHandler.ApproveRequest)
		adminGroup.POST("/requests/:id/reject", r.adminHandler.RejectRequest)
	}
}
