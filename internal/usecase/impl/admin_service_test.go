package impl

import (
	"context"
	"testing"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixtures struct {
	orderRepo    *fakeOrderRepo
	planRepo     *fakeTravelPlanRepo
	userRepo     *fakeUserRepo
	kycRepo      *fakeKYCRepo
	activityRepo *fakeActivityRepo
	notifier     *noopNotifier
}

func createTestAdminService(t *testing.T) (usecase.AdminUsecase, *adminFixtures) {
	t.Helper()

	fixtures := &adminFixtures{
		orderRepo:    newFakeOrderRepo(),
		planRepo:     newFakeTravelPlanRepo(),
		userRepo:     newFakeUserRepo(),
		kycRepo:      newFakeKYCRepo(),
		activityRepo: newFakeActivityRepo(),
		notifier:     &noopNotifier{},
	}

	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		userRepo:     fixtures.userRepo,
		orderRepo:    fixtures.orderRepo,
		planRepo:     fixtures.planRepo,
		activityRepo: fixtures.activityRepo,
	}}

	svc := NewAdminService(AdminServiceParams{
		TxManager:    txManager,
		OrderRepo:    fixtures.orderRepo,
		UserRepo:     fixtures.userRepo,
		KYCRepo:      fixtures.kycRepo,
		ActivityRepo: fixtures.activityRepo,
		Notifier:     fixtures.notifier,
		Logger:       newDiscardLogger(),
	})

	return svc, fixtures
}

func seedOrder(t *testing.T, fixtures *adminFixtures, status entity.OrderStatus) *entity.Order {
	t.Helper()

	order := &entity.Order{
		UserID:         uuid.New(),
		PackageName:    "Laptop",
		Status:         status,
		Priority:       entity.OrderPriorityStandard,
		TrackingNumber: entity.NewTrackingNumber(),
	}
	require.NoError(t, fixtures.orderRepo.Create(context.Background(), order))

	return order
}

func seedPlan(t *testing.T, fixtures *adminFixtures) *entity.TravelPlan {
	t.Helper()

	plan := &entity.TravelPlan{
		UserID:       uuid.New(),
		Origin:       "London",
		Destination:  "Lagos",
		Capacity:     2,
		FlightNumber: "BA75",
		Status:       entity.TravelPlanStatusScheduled,
	}
	require.NoError(t, fixtures.planRepo.Create(context.Background(), plan))

	return plan
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	order := seedOrder(t, fixtures, entity.OrderStatusInProcess)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)

	require.Len(t, fixtures.notifier.events, 1)
	assert.Equal(t, entity.NotificationOrderUpdated, fixtures.notifier.events[0].Type)
}

func TestUpdateOrderStatusSameStatusNoop(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	order := seedOrder(t, fixtures, entity.OrderStatusConfirmed)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)
	assert.Empty(t, fixtures.notifier.events)
}

func TestUpdateOrderStatusTerminalRejected(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	order := seedOrder(t, fixtures, entity.OrderStatusDelivered)

	_, err := svc.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatusInTransit)
	assert.ErrorIs(t, err, domainerrors.ErrOrderTerminal)
}

func TestUpdateOrderStatusInvalidStatus(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	order := seedOrder(t, fixtures, entity.OrderStatusInProcess)

	_, err := svc.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatus("Lost"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestMatchOrderToTravelPlan(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	order := seedOrder(t, fixtures, entity.OrderStatusConfirmed)
	plan := seedPlan(t, fixtures)

	out, err := svc.MatchOrderToTravelPlan(context.Background(), usecase.MatchInput{
		OrderID:      order.ID,
		TravelPlanID: plan.ID,
	})
	require.NoError(t, err)
	assert.False(t, out.AlreadyMatched)
	assert.Equal(t, entity.OrderStatusInTransit, out.Order.Status)
	assert.True(t, out.TravelPlan.IsMatched)
	assert.Contains(t, out.TravelPlan.MatchedOrders, order.ID)

	// Both the sender and the traveler are notified.
	require.Len(t, fixtures.notifier.events, 2)
	assert.Equal(t, entity.NotificationOrderMatched, fixtures.notifier.events[0].Type)
	assert.Equal(t, entity.NotificationTravelPlanMatched, fixtures.notifier.events[1].Type)

	// The match is on the audit trail.
	require.NotEmpty(t, fixtures.activityRepo.entries)
	assert.Equal(t, "match", fixtures.activityRepo.entries[0].Action)
}

func TestMatchSamePairIdempotent(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	order := seedOrder(t, fixtures, entity.OrderStatusConfirmed)
	plan := seedPlan(t, fixtures)

	input := usecase.MatchInput{OrderID: order.ID, TravelPlanID: plan.ID}
	_, err := svc.MatchOrderToTravelPlan(context.Background(), input)
	require.NoError(t, err)

	out, err := svc.MatchOrderToTravelPlan(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, out.AlreadyMatched)
	assert.Len(t, out.TravelPlan.MatchedOrders, 1)
	// No duplicate notifications for the repeat.
	assert.Len(t, fixtures.notifier.events, 2)
}

func TestMatchInTransitOrderToOtherPlanRejected(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	order := seedOrder(t, fixtures, entity.OrderStatusConfirmed)
	plan := seedPlan(t, fixtures)
	otherPlan := seedPlan(t, fixtures)

	_, err := svc.MatchOrderToTravelPlan(context.Background(), usecase.MatchInput{OrderID: order.ID, TravelPlanID: plan.ID})
	require.NoError(t, err)

	_, err = svc.MatchOrderToTravelPlan(context.Background(), usecase.MatchInput{OrderID: order.ID, TravelPlanID: otherPlan.ID})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestMatchTerminalOrderRejected(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	order := seedOrder(t, fixtures, entity.OrderStatusCancelled)
	plan := seedPlan(t, fixtures)

	_, err := svc.MatchOrderToTravelPlan(context.Background(), usecase.MatchInput{OrderID: order.ID, TravelPlanID: plan.ID})
	assert.ErrorIs(t, err, domainerrors.ErrOrderTerminal)

	// The plan is untouched.
	stored, err := fixtures.planRepo.FindByID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsMatched)
}

func TestMatchUnknownOrder(t *testing.T) {
	svc, fixtures := createTestAdminService(t)
	plan := seedPlan(t, fixtures)

	_, err := svc.MatchOrderToTravelPlan(context.Background(), usecase.MatchInput{OrderID: uuid.New(), TravelPlanID: plan.ID})
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestListUsersRejectsAdminRole(t *testing.T) {
	svc, _ := createTestAdminService(t)

	_, err := svc.ListUsers(context.Background(), entity.RoleAdmin)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestReviewKYC(t *testing.T) {
	svc, fixtures := createTestAdminService(t)

	kyc := &entity.KYC{UserID: uuid.New(), Status: entity.KYCStatusPending}
	require.NoError(t, fixtures.kycRepo.Create(context.Background(), kyc))

	reviewed, err := svc.ReviewKYC(context.Background(), kyc.ID, true)
	require.NoError(t, err)
	assert.Equal(t, entity.KYCStatusApproved, reviewed.Status)

	// A second review is rejected.
	_, err = svc.ReviewKYC(context.Background(), kyc.ID, false)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestReviewKYCReject(t *testing.T) {
	svc, fixtures := createTestAdminService(t)

	kyc := &entity.KYC{UserID: uuid.New(), Status: entity.KYCStatusPending}
	require.NoError(t, fixtures.kycRepo.Create(context.Background(), kyc))

	reviewed, err := svc.ReviewKYC(context.Background(), kyc.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.KYCStatusRejected, reviewed.Status)
}
