package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"ladx/config"
	"ladx/internal/delivery/http/response"
	"ladx/internal/domain/entity"
	"ladx/internal/domain/repository"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxOrderImages caps the number of package photos per order.
const maxOrderImages = 5

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Config  *config.Config
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	cfg     *config.Config
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		cfg:     params.Config,
		logger:  params.Logger,
	}
}

// CreateOrderRequest represents the multipart form fields for creating an
// order. Package photos ride alongside under the "images" file field.
type CreateOrderRequest struct {
	PackageName           string  `form:"package_name" validate:"required"`
	PackageDetails        string  `form:"package_details"`
	ItemDescription       string  `form:"item_description"`
	PackageValue          float64 `form:"package_value" validate:"gte=0"`
	QuantityInKg          float64 `form:"quantity_in_kg" validate:"required,gt=0"`
	Price                 float64 `form:"price" validate:"gte=0"`
	AddressSendingFrom    string  `form:"address_sending_from" validate:"required"`
	AddressDeliveringTo   string  `form:"address_delivering_to" validate:"required"`
	ReceiverName          string  `form:"receiver_name" validate:"required"`
	ReceiverPhone         string  `form:"receiver_phone" validate:"required"`
	Priority              string  `form:"priority" validate:"omitempty,oneof=Standard Express"`
	EstimatedDeliveryDate string  `form:"estimated_delivery_date"`
	SpecialInstructions   string  `form:"special_instructions"`
}

// UpdateOrderRequest carries the editable order fields. Absent fields
// leave the current value untouched. Sent as JSON, or as a multipart
// form when replacement package photos ride along under "images".
type UpdateOrderRequest struct {
	PackageName           *string  `json:"package_name" form:"package_name"`
	PackageDetails        *string  `json:"package_details" form:"package_details"`
	ItemDescription       *string  `json:"item_description" form:"item_description"`
	PackageValue          *float64 `json:"package_value" form:"package_value" validate:"omitempty,gte=0"`
	QuantityInKg          *float64 `json:"quantity_in_kg" form:"quantity_in_kg" validate:"omitempty,gt=0"`
	Price                 *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	AddressSendingFrom    *string  `json:"address_sending_from" form:"address_sending_from"`
	AddressDeliveringTo   *string  `json:"address_delivering_to" form:"address_delivering_to"`
	ReceiverName          *string  `json:"receiver_name" form:"receiver_name"`
	ReceiverPhone         *string  `json:"receiver_phone" form:"receiver_phone"`
	Priority              *string  `json:"priority" form:"priority" validate:"omitempty,oneof=Standard Express"`
	EstimatedDeliveryDate *string  `json:"estimated_delivery_date" form:"estimated_delivery_date"`
	SpecialInstructions   *string  `json:"special_instructions" form:"special_instructions"`
}

// CreateOrder handles the multipart order creation request.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.CreateOrderInput{
		PackageName:         req.PackageName,
		PackageDetails:      req.PackageDetails,
		ItemDescription:     req.ItemDescription,
		PackageValue:        req.PackageValue,
		QuantityInKg:        req.QuantityInKg,
		Price:               req.Price,
		AddressSendingFrom:  req.AddressSendingFrom,
		AddressDeliveringTo: req.AddressDeliveringTo,
		ReceiverName:        req.ReceiverName,
		ReceiverPhone:       req.ReceiverPhone,
		Priority:            entity.OrderPriority(req.Priority),
		SpecialInstructions: req.SpecialInstructions,
	}

	if req.EstimatedDeliveryDate != "" {
		estimated, err := time.Parse(time.RFC3339, req.EstimatedDeliveryDate)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "estimated_delivery_date must be RFC 3339")
		}
		input.EstimatedDeliveryDate = &estimated
	}

	images, uploadErr := h.collectImages(c)
	if uploadErr != nil {
		return uploadErr
	}
	defer func() {
		for _, image := range images {
			if closer, ok := image.Content.(multipart.File); ok {
				_ = closer.Close()
			}
		}
	}()
	input.Images = images

	order, err := h.orderUC.CreateOrder(c.Request().Context(), principal.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// collectImages reads the optional "images" file fields from the multipart
// form. A nil slice means the order was created without photos.
func (h *OrderHandler) collectImages(c echo.Context) ([]usecase.OrderImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxOrderImages {
		return nil, response.BadRequest(c, "TOO_MANY_FILES", "too many package photos")
	}

	images := make([]usecase.OrderImageUpload, 0, len(files))
	closeOpened := func() {
		for _, image := range images {
			if closer, ok := image.Content.(multipart.File); ok {
				_ = closer.Close()
			}
		}
	}

	for _, fileHeader := range files {
		if h.cfg.Media != nil && h.cfg.Media.MaxUploadSize > 0 && fileHeader.Size > h.cfg.Media.MaxUploadSize {
			closeOpened()

			return nil, response.BadRequest(c, "FILE_TOO_LARGE", "a package photo exceeds the upload size limit")
		}

		file, err := fileHeader.Open()
		if err != nil {
			closeOpened()

			return nil, response.BadRequest(c, "INVALID_INPUT", "could not read a package photo")
		}

		images = append(images, usecase.OrderImageUpload{
			Filename: fileHeader.Filename,
			MIME:     fileHeader.Header.Get("Content-Type"),
			Content:  file,
		})
	}

	return images, nil
}

// GetOrder returns one order the caller is allowed to see.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), principal, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// TrackOrder resolves a tracking number without authentication.
func (h *OrderHandler) TrackOrder(c echo.Context) error {
	trackingNumber := c.Param("trackingNumber")
	if trackingNumber == "" {
		return response.BadRequest(c, "INVALID_ID", "Tracking number is required")
	}

	order, err := h.orderUC.TrackOrder(c.Request().Context(), trackingNumber)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// TrackingQR renders the QR code PNG pointing at the order's tracking page.
func (h *OrderHandler) TrackingQR(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	png, err := h.orderUC.TrackingQR(c.Request().Context(), principal, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ListOrders returns a filtered page of orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	filter, filterErr := h.orderFilterFromQuery(c)
	if filterErr != nil {
		return filterErr
	}

	output, err := h.orderUC.ListOrders(c.Request().Context(), principal, filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"orders": output.Orders,
		"total":  output.Total,
	}, "Orders retrieved successfully")
}

// orderFilterFromQuery builds the list filter from query parameters.
func (h *OrderHandler) orderFilterFromQuery(c echo.Context) (repository.OrderFilter, error) {
	filter := repository.OrderFilter{
		Status:         entity.OrderStatus(c.QueryParam("status")),
		Priority:       entity.OrderPriority(c.QueryParam("priority")),
		TrackingNumber: c.QueryParam("tracking_number"),
		Page:           queryInt(c, "page", 1),
		PerPage:        queryInt(c, "per_page", 20),
	}

	if raw := c.QueryParam("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return filter, response.BadRequest(c, "INVALID_ID", "Invalid user_id filter")
		}
		filter.UserID = &userID
	}

	if raw := c.QueryParam("created_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, response.BadRequest(c, "VALIDATION_ERROR", "created_from must be RFC 3339")
		}
		filter.CreatedFrom = &from
	}

	if raw := c.QueryParam("created_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, response.BadRequest(c, "VALIDATION_ERROR", "created_to must be RFC 3339")
		}
		filter.CreatedTo = &to
	}

	return filter, nil
}

// UpdateOrder applies edits to a non-terminal order.
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.UpdateOrderInput{
		PackageName:         req.PackageName,
		PackageDetails:      req.PackageDetails,
		ItemDescription:     req.ItemDescription,
		PackageValue:        req.PackageValue,
		QuantityInKg:        req.QuantityInKg,
		Price:               req.Price,
		AddressSendingFrom:  req.AddressSendingFrom,
		AddressDeliveringTo: req.AddressDeliveringTo,
		ReceiverName:        req.ReceiverName,
		ReceiverPhone:       req.ReceiverPhone,
		SpecialInstructions: req.SpecialInstructions,
	}

	if req.Priority != nil {
		priority := entity.OrderPriority(*req.Priority)
		input.Priority = &priority
	}

	if req.EstimatedDeliveryDate != nil {
		estimated, err := time.Parse(time.RFC3339, *req.EstimatedDeliveryDate)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "estimated_delivery_date must be RFC 3339")
		}
		input.EstimatedDeliveryDate = &estimated
	}

	images, uploadErr := h.collectImages(c)
	if uploadErr != nil {
		return uploadErr
	}
	defer func() {
		for _, image := range images {
			if closer, ok := image.Content.(multipart.File); ok {
				_ = closer.Close()
			}
		}
	}()
	input.Images = images

	order, err := h.orderUC.UpdateOrder(c.Request().Context(), principal, orderID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order updated successfully")
}

// CancelOrder cancels a non-terminal order. The row is kept for tracking.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.orderUC.CancelOrder(c.Request().Context(), principal, orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order cancelled successfully")
}
