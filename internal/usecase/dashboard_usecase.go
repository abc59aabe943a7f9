package usecase

import (
	"context"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// UserDashboard summarizes a single user's activity.
type UserDashboard struct {
	OrdersByStatus map[entity.OrderStatus]int64 `json:"orders_by_status"`
	TotalOrders    int64                        `json:"total_orders"`
	TravelPlans    int64                        `json:"travel_plans"`
	UnreadCount    int64                        `json:"unread_count"`
	RecentActivity []*entity.ActivityLog        `json:"recent_activity"`
}

// AdminDashboard summarizes platform-wide activity.
type AdminDashboard struct {
	OrdersByStatus   map[entity.OrderStatus]int64 `json:"orders_by_status"`
	TotalOrders      int64                        `json:"total_orders"`
	TotalTravelPlans int64                        `json:"total_travel_plans"`
	Senders          int64                        `json:"senders"`
	Travelers        int64                        `json:"travelers"`
	PendingKYC       int64                        `json:"pending_kyc"`
}

// DashboardUsecase aggregates counts for the dashboard views.
type DashboardUsecase interface {
	// UserDashboard builds the dashboard for one user.
	UserDashboard(ctx context.Context, userID uuid.UUID) (*UserDashboard, error)

	// AdminDashboard builds the platform-wide dashboard.
	AdminDashboard(ctx context.Context) (*AdminDashboard, error)
}
