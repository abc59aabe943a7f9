// Package router contains routing setup for the HTTP delivery.
package router

import (
	"ladx/internal/delivery/http/middleware"
	"ladx/internal/delivery/http/router/handler"
	"ladx/internal/delivery/ws"
	"ladx/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// RouterParams holds everything the router needs, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	OrderHandler        *handler.OrderHandler
	TravelPlanHandler   *handler.TravelPlanHandler
	AdminHandler        *handler.AdminHandler
	DashboardHandler    *handler.DashboardHandler
	NotificationHandler *handler.NotificationHandler
	WSHandler           *ws.Handler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	e.Use(p.RequestIDMiddleware.Process)

	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Realtime push; authenticates via token query parameter
	e.GET("/ws", p.WSHandler.Serve)

	api := e.Group("/api/v1")

	// Public tracking page lookup
	api.GET("/track/:trackingNumber", p.OrderHandler.TrackOrder)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", p.AuthHandler.Signup)
		authGroup.POST("/verify-otp", p.AuthHandler.VerifyOTP)
		authGroup.POST("/resend-otp", p.AuthHandler.ResendOTP)
		authGroup.POST("/login", p.AuthHandler.Login)
		authGroup.POST("/admin/login", p.AuthHandler.AdminLogin)
		authGroup.POST("/forgot-password", p.AuthHandler.ForgotPassword)
		authGroup.POST("/reset-password", p.AuthHandler.ResetPassword)
		authGroup.POST("/logout", p.AuthHandler.Logout, p.AuthMiddleware.Authenticate)
	}

	// Profile routes that require authentication
	userGroup := api.Group("/users/me")
	userGroup.Use(p.AuthMiddleware.Authenticate)
	{
		userGroup.GET("", p.UserHandler.GetProfile)
		userGroup.PATCH("", p.UserHandler.UpdateProfile)
		userGroup.POST("/role", p.UserHandler.SwitchRole)
		userGroup.POST("/kyc", p.UserHandler.SubmitKYC)
		userGroup.GET("/kyc", p.UserHandler.GetKYC)
	}

	// Order routes
	orderGroup := api.Group("/orders")
	orderGroup.Use(p.AuthMiddleware.Authenticate)
	{
		orderGroup.POST("", p.OrderHandler.CreateOrder, p.AuthMiddleware.RequireRole(entity.RoleSender))
		orderGroup.GET("", p.OrderHandler.ListOrders)
		orderGroup.GET("/:id", p.OrderHandler.GetOrder)
		orderGroup.GET("/:id/qrcode", p.OrderHandler.TrackingQR)
		orderGroup.PATCH("/:id", p.OrderHandler.UpdateOrder)
		orderGroup.DELETE("/:id", p.OrderHandler.CancelOrder)
	}

	// Travel plan routes
	planGroup := api.Group("/travel-plans")
	planGroup.Use(p.AuthMiddleware.Authenticate)
	{
		planGroup.POST("", p.TravelPlanHandler.CreateTravelPlan, p.AuthMiddleware.RequireRole(entity.RoleTraveler))
		planGroup.GET("", p.TravelPlanHandler.ListTravelPlans)
		planGroup.GET("/search", p.TravelPlanHandler.SearchTravelPlans)
		planGroup.GET("/:id", p.TravelPlanHandler.GetTravelPlan)
		planGroup.PATCH("/:id", p.TravelPlanHandler.UpdateTravelPlan)
		planGroup.DELETE("/:id", p.TravelPlanHandler.DeleteTravelPlan)
	}

	// Notification feed routes
	notificationGroup := api.Group("/notifications")
	notificationGroup.Use(p.AuthMiddleware.Authenticate)
	{
		notificationGroup.GET("", p.NotificationHandler.ListNotifications)
		notificationGroup.GET("/unread-count", p.NotificationHandler.UnreadCount)
		notificationGroup.POST("/:id/read", p.NotificationHandler.MarkRead)
		notificationGroup.POST("/read-all", p.NotificationHandler.MarkAllRead)
		notificationGroup.DELETE("/:id", p.NotificationHandler.DeleteNotification)
	}

	// Dashboards
	api.GET("/dashboard", p.DashboardHandler.UserDashboard, p.AuthMiddleware.Authenticate)

	// Admin routes require authentication and the admin role
	adminGroup := api.Group("/admin")
	adminGroup.Use(p.AuthMiddleware.Authenticate)
	adminGroup.Use(p.AuthMiddleware.RequireAdmin)
	{
		adminGroup.GET("/dashboard", p.DashboardHandler.AdminDashboard)
		adminGroup.PATCH("/orders/:id/status", p.AdminHandler.UpdateOrderStatus)
		adminGroup.POST("/match", p.AdminHandler.MatchOrderToTravelPlan)
		adminGroup.GET("/users", p.AdminHandler.ListUsers)
		adminGroup.GET("/kyc", p.AdminHandler.ListKYCSubmissions)
		adminGroup.POST("/kyc/:id/review", p.AdminHandler.ReviewKYC)
		adminGroup.GET("/activity", p.AdminHandler.ListRecentActivity)
	}
}
