package handler

import (
	"log/slog"
	"net/http"

	"ladx/internal/delivery/http/response"
	"ladx/internal/domain/entity"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler holds dependencies for admin-only handlers.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// UpdateOrderStatusRequest moves an order through its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='In Process' Confirmed 'In Transit' Delivered Cancelled"`
}

// MatchRequest links an order to a travel plan.
type MatchRequest struct {
	OrderID      uuid.UUID `json:"order_id" validate:"required"`
	TravelPlanID uuid.UUID `json:"travel_plan_id" validate:"required"`
}

// ReviewKYCRequest approves or rejects a pending KYC submission.
type ReviewKYCRequest struct {
	Approve bool `json:"approve"`
}

// UpdateOrderStatus handles the admin order status transition.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.adminUC.UpdateOrderStatus(c.Request().Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// MatchOrderToTravelPlan links an order to a travel plan and notifies both
// parties. Repeating the same pair is a no-op.
func (h *AdminHandler) MatchOrderToTravelPlan(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid match input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.adminUC.MatchOrderToTravelPlan(c.Request().Context(), usecase.MatchInput{
		OrderID:      req.OrderID,
		TravelPlanID: req.TravelPlanID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Order matched successfully"
	if output.AlreadyMatched {
		message = "Order was already matched to this travel plan"
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"order":           output.Order,
		"travel_plan":     output.TravelPlan,
		"already_matched": output.AlreadyMatched,
	}, message)
}

// ListUsers returns all users with the requested role.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := entity.Role(c.QueryParam("role"))
	if role == "" {
		role = entity.RoleSender
	}

	users, err := h.adminUC.ListUsers(c.Request().Context(), role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Users retrieved successfully")
}

// ListKYCSubmissions returns KYC submissions with the requested status.
func (h *AdminHandler) ListKYCSubmissions(c echo.Context) error {
	status := entity.KYCStatus(c.QueryParam("status"))
	if status == "" {
		status = entity.KYCStatusPending
	}

	submissions, err := h.adminUC.ListKYCSubmissions(c.Request().Context(), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, submissions, "KYC submissions retrieved successfully")
}

// ReviewKYC approves or rejects a pending KYC submission.
func (h *AdminHandler) ReviewKYC(c echo.Context) error {
	kycID, err := pathID(c)
	if err != nil {
		return err
	}

	var req ReviewKYCRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	kyc, err := h.adminUC.ReviewKYC(c.Request().Context(), kycID, req.Approve)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, kyc, "KYC reviewed successfully")
}

// ListRecentActivity returns the latest audit entries across all users.
func (h *AdminHandler) ListRecentActivity(c echo.Context) error {
	limit := queryInt(c, "limit", 50)

	activity, err := h.adminUC.ListRecentActivity(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, activity, "Activity retrieved successfully")
}
