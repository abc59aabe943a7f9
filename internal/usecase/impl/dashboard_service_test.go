package impl

import (
	"context"
	"testing"

	"ladx/internal/domain/entity"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixtures struct {
	orderRepo        *fakeOrderRepo
	planRepo         *fakeTravelPlanRepo
	userRepo         *fakeUserRepo
	kycRepo          *fakeKYCRepo
	notificationRepo *fakeNotificationRepo
	activityRepo     *fakeActivityRepo
}

func createTestDashboardService(t *testing.T) (usecase.DashboardUsecase, *dashboardFixtures) {
	t.Helper()

	fixtures := &dashboardFixtures{
		orderRepo:        newFakeOrderRepo(),
		planRepo:         newFakeTravelPlanRepo(),
		userRepo:         newFakeUserRepo(),
		kycRepo:          newFakeKYCRepo(),
		notificationRepo: newFakeNotificationRepo(),
		activityRepo:     newFakeActivityRepo(),
	}

	svc := NewDashboardService(DashboardServiceParams{
		OrderRepo:        fixtures.orderRepo,
		PlanRepo:         fixtures.planRepo,
		UserRepo:         fixtures.userRepo,
		KYCRepo:          fixtures.kycRepo,
		NotificationRepo: fixtures.notificationRepo,
		ActivityRepo:     fixtures.activityRepo,
	})

	return svc, fixtures
}

func TestUserDashboard(t *testing.T) {
	svc, fixtures := createTestDashboardService(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, fixtures.orderRepo.Create(ctx, &entity.Order{UserID: userID, Status: entity.OrderStatusInProcess}))
	require.NoError(t, fixtures.orderRepo.Create(ctx, &entity.Order{UserID: userID, Status: entity.OrderStatusDelivered}))
	require.NoError(t, fixtures.orderRepo.Create(ctx, &entity.Order{UserID: uuid.New(), Status: entity.OrderStatusInProcess}))
	require.NoError(t, fixtures.planRepo.Create(ctx, &entity.TravelPlan{UserID: userID}))
	require.NoError(t, fixtures.notificationRepo.Create(ctx, &entity.Notification{UserID: userID}))

	dashboard, err := svc.UserDashboard(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dashboard.TotalOrders)
	assert.Equal(t, int64(1), dashboard.OrdersByStatus[entity.OrderStatusInProcess])
	assert.Equal(t, int64(1), dashboard.OrdersByStatus[entity.OrderStatusDelivered])
	assert.Equal(t, int64(1), dashboard.TravelPlans)
	assert.Equal(t, int64(1), dashboard.UnreadCount)
}

func TestAdminDashboard(t *testing.T) {
	svc, fixtures := createTestDashboardService(t)
	ctx := context.Background()

	require.NoError(t, fixtures.orderRepo.Create(ctx, &entity.Order{UserID: uuid.New(), Status: entity.OrderStatusInProcess}))
	require.NoError(t, fixtures.orderRepo.Create(ctx, &entity.Order{UserID: uuid.New(), Status: entity.OrderStatusInTransit}))
	require.NoError(t, fixtures.planRepo.Create(ctx, &entity.TravelPlan{UserID: uuid.New()}))
	require.NoError(t, fixtures.userRepo.Create(ctx, &entity.User{Email: "a@example.com", Role: entity.RoleSender}))
	require.NoError(t, fixtures.userRepo.Create(ctx, &entity.User{Email: "b@example.com", Role: entity.RoleTraveler}))
	require.NoError(t, fixtures.kycRepo.Create(ctx, &entity.KYC{UserID: uuid.New(), Status: entity.KYCStatusPending}))
	require.NoError(t, fixtures.kycRepo.Create(ctx, &entity.KYC{UserID: uuid.New(), Status: entity.KYCStatusApproved}))

	dashboard, err := svc.AdminDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dashboard.TotalOrders)
	assert.Equal(t, int64(1), dashboard.TotalTravelPlans)
	assert.Equal(t, int64(1), dashboard.Senders)
	assert.Equal(t, int64(1), dashboard.Travelers)
	assert.Equal(t, int64(1), dashboard.PendingKYC)
}
