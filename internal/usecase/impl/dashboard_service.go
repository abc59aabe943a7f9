package impl

import (
	"context"

	"ladx/internal/domain/entity"
	"ladx/internal/domain/repository"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const recentActivityLimit = 10

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	orderRepo        repository.OrderRepository
	planRepo         repository.TravelPlanRepository
	userRepo         repository.UserRepository
	kycRepo          repository.KYCRepository
	notificationRepo repository.NotificationRepository
	activityRepo     repository.ActivityLogRepository
}

// DashboardServiceParams holds dependencies for the dashboard service, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	OrderRepo        repository.OrderRepository
	PlanRepo         repository.TravelPlanRepository
	UserRepo         repository.UserRepository
	KYCRepo          repository.KYCRepository
	NotificationRepo repository.NotificationRepository
	ActivityRepo     repository.ActivityLogRepository
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		orderRepo:        params.OrderRepo,
		planRepo:         params.PlanRepo,
		userRepo:         params.UserRepo,
		kycRepo:          params.KYCRepo,
		notificationRepo: params.NotificationRepo,
		activityRepo:     params.ActivityRepo,
	}
}

// UserDashboard builds the dashboard for one user.
func (srv *dashboardService) UserDashboard(ctx context.Context, userID uuid.UUID) (*usecase.UserDashboard, error) {
	orders, totalOrders, err := srv.orderRepo.List(ctx, repository.OrderFilter{UserID: &userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user orders")
	}

	byStatus := make(map[entity.OrderStatus]int64)
	for _, order := range orders {
		byStatus[order.Status]++
	}

	_, totalPlans, err := srv.planRepo.List(ctx, repository.TravelPlanFilter{UserID: &userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user travel plans")
	}

	unread, err := srv.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count unread notifications")
	}

	activity, err := srv.activityRepo.ListByUser(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent activity")
	}

	return &usecase.UserDashboard{
		OrdersByStatus: byStatus,
		TotalOrders:    totalOrders,
		TravelPlans:    totalPlans,
		UnreadCount:    unread,
		RecentActivity: activity,
	}, nil
}

// AdminDashboard builds the platform-wide dashboard.
func (srv *dashboardService) AdminDashboard(ctx context.Context) (*usecase.AdminDashboard, error) {
	byStatus, err := srv.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	var totalOrders int64
	for _, count := range byStatus {
		totalOrders += count
	}

	totalPlans, err := srv.planRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count travel plans")
	}

	senders, err := srv.userRepo.CountByRole(ctx, entity.RoleSender)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count senders")
	}

	travelers, err := srv.userRepo.CountByRole(ctx, entity.RoleTraveler)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count travelers")
	}

	pendingKYC, err := srv.kycRepo.ListByStatus(ctx, entity.KYCStatusPending)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count pending KYC")
	}

	return &usecase.AdminDashboard{
		OrdersByStatus:   byStatus,
		TotalOrders:      totalOrders,
		TotalTravelPlans: totalPlans,
		Senders:          senders,
		Travelers:        travelers,
		PendingKYC:       int64(len(pendingKYC)),
	}, nil
}
