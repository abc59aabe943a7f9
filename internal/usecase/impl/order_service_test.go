package impl

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixtures struct {
	orderRepo    *fakeOrderRepo
	activityRepo *fakeActivityRepo
	mediaStore   *fakeMediaStore
	notifier     *noopNotifier
}

func createTestOrderService(t *testing.T) (usecase.OrderUsecase, *orderFixtures) {
	t.Helper()

	fixtures := &orderFixtures{
		orderRepo:    newFakeOrderRepo(),
		activityRepo: newFakeActivityRepo(),
		mediaStore:   &fakeMediaStore{},
		notifier:     &noopNotifier{},
	}

	svc := NewOrderService(OrderServiceParams{
		OrderRepo:     fixtures.orderRepo,
		ActivityRepo:  fixtures.activityRepo,
		MediaStore:    fixtures.mediaStore,
		QRCodeService: fakeQRCodeService{},
		Notifier:      fixtures.notifier,
		Logger:        newDiscardLogger(),
	})

	return svc, fixtures
}

func senderPrincipal(id uuid.UUID) usecase.Principal {
	return usecase.Principal{ID: id, Role: entity.RoleSender}
}

func adminPrincipal() usecase.Principal {
	return usecase.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
}

func createOrderInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		PackageName:         "Laptop",
		QuantityInKg:        2.5,
		AddressSendingFrom:  "Lagos",
		AddressDeliveringTo: "Accra",
		ReceiverName:        "Kofi Mensah",
		ReceiverPhone:       "+233201234567",
	}
}

func TestCreateOrderDefaults(t *testing.T) {
	svc, fixtures := createTestOrderService(t)
	userID := uuid.New()

	order, err := svc.CreateOrder(context.Background(), userID, createOrderInput())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusInProcess, order.Status)
	assert.Equal(t, entity.OrderPriorityStandard, order.Priority)
	assert.Regexp(t, regexp.MustCompile(`^TRK\d+$`), order.TrackingNumber)

	require.Len(t, fixtures.notifier.events, 1)
	assert.Equal(t, entity.NotificationOrderCreated, fixtures.notifier.events[0].Type)
}

func TestCreateOrderInvalidPriority(t *testing.T) {
	svc, _ := createTestOrderService(t)

	input := createOrderInput()
	input.Priority = entity.OrderPriority("Urgent")

	order, err := svc.CreateOrder(context.Background(), uuid.New(), input)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCreateOrderUploadsImages(t *testing.T) {
	svc, fixtures := createTestOrderService(t)

	input := createOrderInput()
	input.Images = []usecase.OrderImageUpload{
		{Filename: "front.jpg", MIME: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
		{Filename: "back.jpg", MIME: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
	}

	order, err := svc.CreateOrder(context.Background(), uuid.New(), input)
	require.NoError(t, err)
	require.Len(t, order.Images, 2)
	assert.Equal(t, "orders/front.jpg", order.Images[0].Key)
	assert.Len(t, fixtures.mediaStore.uploads, 2)
}

func TestGetOrderForbiddenForOtherUser(t *testing.T) {
	svc, _ := createTestOrderService(t)
	owner := uuid.New()

	order, err := svc.CreateOrder(context.Background(), owner, createOrderInput())
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), senderPrincipal(uuid.New()), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Admins and the owner both see it.
	_, err = svc.GetOrder(context.Background(), adminPrincipal(), order.ID)
	assert.NoError(t, err)
	_, err = svc.GetOrder(context.Background(), senderPrincipal(owner), order.ID)
	assert.NoError(t, err)
}

func TestTrackOrderByTrackingNumber(t *testing.T) {
	svc, _ := createTestOrderService(t)

	created, err := svc.CreateOrder(context.Background(), uuid.New(), createOrderInput())
	require.NoError(t, err)

	tracked, err := svc.TrackOrder(context.Background(), created.TrackingNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, tracked.ID)

	_, err = svc.TrackOrder(context.Background(), "TRKDOESNOTEXIST")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestListOrdersScopedToCaller(t *testing.T) {
	svc, _ := createTestOrderService(t)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.CreateOrder(context.Background(), alice, createOrderInput())
	require.NoError(t, err)
	_, err = svc.CreateOrder(context.Background(), bob, createOrderInput())
	require.NoError(t, err)

	out, err := svc.ListOrders(context.Background(), senderPrincipal(alice), repository.OrderFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), out.Total)
	assert.Equal(t, alice, out.Orders[0].UserID)

	// An admin without a filter sees everything.
	out, err = svc.ListOrders(context.Background(), adminPrincipal(), repository.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
}

func TestUpdateOrderPartial(t *testing.T) {
	svc, _ := createTestOrderService(t)
	owner := uuid.New()

	order, err := svc.CreateOrder(context.Background(), owner, createOrderInput())
	require.NoError(t, err)

	newName := "Camera"
	express := entity.OrderPriorityExpress
	updated, err := svc.UpdateOrder(context.Background(), senderPrincipal(owner), order.ID, usecase.UpdateOrderInput{
		PackageName: &newName,
		Priority:    &express,
	})
	require.NoError(t, err)
	assert.Equal(t, "Camera", updated.PackageName)
	assert.Equal(t, entity.OrderPriorityExpress, updated.Priority)
	// Untouched fields survive.
	assert.Equal(t, "Accra", updated.AddressDeliveringTo)
}

func TestUpdateOrderWithNewImagesRetiresOldUploads(t *testing.T) {
	svc, fixtures := createTestOrderService(t)
	owner := uuid.New()

	input := createOrderInput()
	input.Images = []usecase.OrderImageUpload{
		{Filename: "front.jpg", MIME: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
	}
	order, err := svc.CreateOrder(context.Background(), owner, input)
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(context.Background(), senderPrincipal(owner), order.ID, usecase.UpdateOrderInput{
		Images: []usecase.OrderImageUpload{
			{Filename: "replacement.jpg", MIME: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
		},
	})
	require.NoError(t, err)

	// New photos are appended to the list, and the old blobs are removed
	// from the media store.
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "orders/replacement.jpg", updated.Images[1].Key)
	assert.Equal(t, []string{"orders/front.jpg"}, fixtures.mediaStore.deleted)
}

func TestUpdateOrderWithoutImagesKeepsUploads(t *testing.T) {
	svc, fixtures := createTestOrderService(t)
	owner := uuid.New()

	input := createOrderInput()
	input.Images = []usecase.OrderImageUpload{
		{Filename: "front.jpg", MIME: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
	}
	order, err := svc.CreateOrder(context.Background(), owner, input)
	require.NoError(t, err)

	newName := "Camera"
	updated, err := svc.UpdateOrder(context.Background(), senderPrincipal(owner), order.ID, usecase.UpdateOrderInput{PackageName: &newName})
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Empty(t, fixtures.mediaStore.deleted)
}

func TestUpdateTerminalOrderRejected(t *testing.T) {
	svc, fixtures := createTestOrderService(t)
	owner := uuid.New()

	order, err := svc.CreateOrder(context.Background(), owner, createOrderInput())
	require.NoError(t, err)

	order.Status = entity.OrderStatusDelivered
	require.NoError(t, fixtures.orderRepo.Update(context.Background(), order))

	newName := "Camera"
	_, err = svc.UpdateOrder(context.Background(), senderPrincipal(owner), order.ID, usecase.UpdateOrderInput{PackageName: &newName})
	assert.ErrorIs(t, err, domainerrors.ErrOrderTerminal)
}

func TestCancelOrder(t *testing.T) {
	svc, fixtures := createTestOrderService(t)
	owner := uuid.New()

	order, err := svc.CreateOrder(context.Background(), owner, createOrderInput())
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(context.Background(), senderPrincipal(owner), order.ID))

	stored, err := fixtures.orderRepo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, stored.Status)

	// Cancelling again hits the terminal guard.
	err = svc.CancelOrder(context.Background(), senderPrincipal(owner), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderTerminal)
}

func TestTrackingQR(t *testing.T) {
	svc, _ := createTestOrderService(t)
	owner := uuid.New()

	order, err := svc.CreateOrder(context.Background(), owner, createOrderInput())
	require.NoError(t, err)

	png, err := svc.TrackingQR(context.Background(), senderPrincipal(owner), order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
