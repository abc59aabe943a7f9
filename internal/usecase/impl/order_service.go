package impl

import (
	"context"
	"log/slog"

	deliverycontext "ladx/internal/delivery/context"
	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/domain/service"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const orderImageFolder = "orders"

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo     repository.OrderRepository
	activityRepo  repository.ActivityLogRepository
	mediaStore    service.MediaStore
	qrcodeService service.QRCodeService
	notifier      usecase.Notifier
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for the order service, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo     repository.OrderRepository
	ActivityRepo  repository.ActivityLogRepository
	MediaStore    service.MediaStore
	QRCodeService service.QRCodeService
	Notifier      usecase.Notifier
	Logger        *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:     params.OrderRepo,
		activityRepo:  params.ActivityRepo,
		mediaStore:    params.MediaStore,
		qrcodeService: params.QRCodeService,
		notifier:      params.Notifier,
		logger:        params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder stores the uploaded images and creates the order.
func (srv *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, input usecase.CreateOrderInput) (*entity.Order, error) {
	priority := input.Priority
	if priority == "" {
		priority = entity.OrderPriorityStandard
	}
	if !priority.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid priority")
	}

	images, err := srv.uploadImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		UserID:                userID,
		PackageName:           input.PackageName,
		PackageDetails:        input.PackageDetails,
		ItemDescription:       input.ItemDescription,
		PackageValue:          input.PackageValue,
		QuantityInKg:          input.QuantityInKg,
		Price:                 input.Price,
		AddressSendingFrom:    input.AddressSendingFrom,
		AddressDeliveringTo:   input.AddressDeliveringTo,
		ReceiverName:          input.ReceiverName,
		ReceiverPhone:         input.ReceiverPhone,
		Images:                images,
		Status:                entity.OrderStatusInProcess,
		Priority:              priority,
		TrackingNumber:        entity.NewTrackingNumber(),
		EstimatedDeliveryDate: input.EstimatedDeliveryDate,
		SpecialInstructions:   input.SpecialInstructions,
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		srv.cleanupImages(ctx, images)

		return nil, err
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, userID, "create", "order", &order.ID,
		map[string]any{"tracking_number": order.TrackingNumber})
	srv.notifier.Notify(ctx, userID, entity.NotificationOrderCreated,
		"Your order "+order.TrackingNumber+" has been created.",
		map[string]any{"order_id": order.ID.String(), "tracking_number": order.TrackingNumber})

	srv.log(ctx).Info("Order created",
		slog.String("order_id", order.ID.String()),
		slog.String("tracking_number", order.TrackingNumber))

	return order, nil
}

// GetOrder returns an order the caller is allowed to see.
func (srv *orderService) GetOrder(ctx context.Context, caller usecase.Principal, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && order.UserID != caller.ID {
		return nil, domainerrors.ErrForbidden
	}

	return order, nil
}

// TrackOrder resolves a tracking number without authentication.
func (srv *orderService) TrackOrder(ctx context.Context, trackingNumber string) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByTrackingNumber(ctx, trackingNumber)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to track order")
	}

	return order, nil
}

// TrackingQR renders the QR code PNG for an order's tracking page.
func (srv *orderService) TrackingQR(ctx context.Context, caller usecase.Principal, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateTrackingQR(order.TrackingNumber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tracking QR")
	}

	return png, nil
}

// ListOrders returns orders matching the filter.
func (srv *orderService) ListOrders(ctx context.Context, caller usecase.Principal, filter repository.OrderFilter) (*usecase.OrderListOutput, error) {
	// Non-admin callers only ever see their own orders.
	if !caller.IsAdmin() {
		filter.UserID = &caller.ID
	}

	orders, total, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.OrderListOutput{Orders: orders, Total: total}, nil
}

// UpdateOrder applies edits to a non-terminal order owned by the caller.
func (srv *orderService) UpdateOrder(ctx context.Context, caller usecase.Principal, orderID uuid.UUID, input usecase.UpdateOrderInput) (*entity.Order, error) {
	order, err := srv.GetOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status.IsTerminal() {
		return nil, domainerrors.ErrOrderTerminal
	}

	applyOrderUpdate(order, input)
	if !order.Priority.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid priority")
	}

	var retired, uploaded []entity.OrderImage
	if len(input.Images) > 0 {
		var err error
		uploaded, err = srv.uploadImages(ctx, input.Images)
		if err != nil {
			return nil, err
		}
		retired = order.Images
		order.Images = append(order.Images, uploaded...)
	}

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		srv.cleanupImages(ctx, uploaded)

		return nil, err
	}

	// Fresh photos supersede the old uploads; the old blobs are retired
	// once the row is saved.
	srv.cleanupImages(ctx, retired)

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, caller.ID, "update", "order", &order.ID, nil)
	srv.notifier.Notify(ctx, order.UserID, entity.NotificationOrderUpdated,
		"Your order "+order.TrackingNumber+" has been updated.",
		map[string]any{"order_id": order.ID.String()})

	return order, nil
}

// CancelOrder cancels a non-terminal order owned by the caller.
func (srv *orderService) CancelOrder(ctx context.Context, caller usecase.Principal, orderID uuid.UUID) error {
	order, err := srv.GetOrder(ctx, caller, orderID)
	if err != nil {
		return err
	}

	if order.Status.IsTerminal() {
		return domainerrors.ErrOrderTerminal
	}

	order.Status = entity.OrderStatusCancelled
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, caller.ID, "cancel", "order", &order.ID, nil)
	srv.notifier.Notify(ctx, order.UserID, entity.NotificationOrderDeleted,
		"Your order "+order.TrackingNumber+" has been cancelled.",
		map[string]any{"order_id": order.ID.String()})

	return nil
}

func (srv *orderService) findOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// uploadImages stores every image, cleaning up the ones already stored if
// a later upload fails.
func (srv *orderService) uploadImages(ctx context.Context, uploads []usecase.OrderImageUpload) ([]entity.OrderImage, error) {
	images := make([]entity.OrderImage, 0, len(uploads))
	for _, upload := range uploads {
		stored, err := srv.mediaStore.Upload(ctx, orderImageFolder, upload.Filename, upload.MIME, upload.Content)
		if err != nil {
			srv.cleanupImages(ctx, images)

			return nil, errors.Wrap(err, "failed to store order image")
		}
		images = append(images, entity.OrderImage{URL: stored.URL, Key: stored.Key})
	}

	return images, nil
}

func (srv *orderService) cleanupImages(ctx context.Context, images []entity.OrderImage) {
	for _, image := range images {
		if err := srv.mediaStore.Delete(ctx, image.Key); err != nil {
			srv.log(ctx).Warn("failed to clean up order image",
				slog.String("key", image.Key),
				slog.String("error", err.Error()))
		}
	}
}

func applyOrderUpdate(order *entity.Order, input usecase.UpdateOrderInput) {
	if input.PackageName != nil {
		order.PackageName = *input.PackageName
	}
	if input.PackageDetails != nil {
		order.PackageDetails = *input.PackageDetails
	}
	if input.ItemDescription != nil {
		order.ItemDescription = *input.ItemDescription
	}
	if input.PackageValue != nil {
		order.PackageValue = *input.PackageValue
	}
	if input.QuantityInKg != nil {
		order.QuantityInKg = *input.QuantityInKg
	}
	if input.Price != nil {
		order.Price = *input.Price
	}
	if input.AddressSendingFrom != nil {
		order.AddressSendingFrom = *input.AddressSendingFrom
	}
	if input.AddressDeliveringTo != nil {
		order.AddressDeliveringTo = *input.AddressDeliveringTo
	}
	if input.ReceiverName != nil {
		order.ReceiverName = *input.ReceiverName
	}
	if input.ReceiverPhone != nil {
		order.ReceiverPhone = *input.ReceiverPhone
	}
	if input.Priority != nil {
		order.Priority = *input.Priority
	}
	if input.EstimatedDeliveryDate != nil {
		order.EstimatedDeliveryDate = input.EstimatedDeliveryDate
	}
	if input.SpecialInstructions != nil {
		order.SpecialInstructions = *input.SpecialInstructions
	}
}
