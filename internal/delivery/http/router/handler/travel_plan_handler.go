package handler

import (
	"log/slog"
	"net/http"
	"time"

	"ladx/internal/delivery/http/response"
	"ladx/internal/domain/entity"
	"ladx/internal/domain/repository"
	"ladx/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TravelPlanHandlerParams holds dependencies for TravelPlanHandler, injected by Fx.
type TravelPlanHandlerParams struct {
	fx.In

	TravelPlanUC usecase.TravelPlanUsecase
	Logger       *slog.Logger
}

// TravelPlanHandler holds dependencies for travel plan handlers.
type TravelPlanHandler struct {
	travelPlanUC usecase.TravelPlanUsecase
	logger       *slog.Logger
}

// NewTravelPlanHandler is the constructor for TravelPlanHandler.
func NewTravelPlanHandler(params TravelPlanHandlerParams) *TravelPlanHandler {
	return &TravelPlanHandler{
		travelPlanUC: params.TravelPlanUC,
		logger:       params.Logger,
	}
}

// CreateTravelPlanRequest represents the request body for declaring a trip.
type CreateTravelPlanRequest struct {
	Origin          string    `json:"origin" validate:"required"`
	Destination     string    `json:"destination" validate:"required"`
	TravelDate      time.Time `json:"travel_date" validate:"required"`
	Capacity        int       `json:"capacity" validate:"required,gte=1"`
	AvailableWeight float64   `json:"available_weight" validate:"required,gt=0"`
	FlightNumber    string    `json:"flight_number"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	AirlineName     string    `json:"airline_name"`
}

// UpdateTravelPlanRequest carries the editable trip fields. Absent fields
// leave the current value untouched.
type UpdateTravelPlanRequest struct {
	Origin          *string    `json:"origin"`
	Destination     *string    `json:"destination"`
	TravelDate      *time.Time `json:"travel_date"`
	Capacity        *int       `json:"capacity" validate:"omitempty,gte=1"`
	AvailableWeight *float64   `json:"available_weight" validate:"omitempty,gt=0"`
	FlightNumber    *string    `json:"flight_number"`
	DepartureTime   *time.Time `json:"departure_time"`
	ArrivalTime     *time.Time `json:"arrival_time"`
	AirlineName     *string    `json:"airline_name"`
	Status          *string    `json:"status" validate:"omitempty,oneof=Scheduled 'In Progress' Completed"`
}

// CreateTravelPlan declares a trip after verifying its flight number.
func (h *TravelPlanHandler) CreateTravelPlan(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateTravelPlanRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid travel plan input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	plan, err := h.travelPlanUC.CreateTravelPlan(c.Request().Context(), principal.ID, usecase.CreateTravelPlanInput{
		Origin:          req.Origin,
		Destination:     req.Destination,
		TravelDate:      req.TravelDate,
		Capacity:        req.Capacity,
		AvailableWeight: req.AvailableWeight,
		FlightNumber:    req.FlightNumber,
		DepartureTime:   req.DepartureTime,
		ArrivalTime:     req.ArrivalTime,
		AirlineName:     req.AirlineName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, plan, "Travel plan created successfully")
}

// GetTravelPlan returns one plan the caller is allowed to see.
func (h *TravelPlanHandler) GetTravelPlan(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	planID, err := pathID(c)
	if err != nil {
		return err
	}

	plan, err := h.travelPlanUC.GetTravelPlan(c.Request().Context(), principal, planID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, plan, "Travel plan retrieved successfully")
}

// ListTravelPlans returns a filtered page of the caller's plans.
func (h *TravelPlanHandler) ListTravelPlans(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	filter, filterErr := h.travelPlanFilterFromQuery(c)
	if filterErr != nil {
		return filterErr
	}

	output, err := h.travelPlanUC.ListTravelPlans(c.Request().Context(), principal, filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"travel_plans": output.Plans,
		"total":        output.Total,
	}, "Travel plans retrieved successfully")
}

// SearchTravelPlans finds plans by route and date window across all
// travelers. Used by senders looking for available capacity.
func (h *TravelPlanHandler) SearchTravelPlans(c echo.Context) error {
	filter, filterErr := h.travelPlanFilterFromQuery(c)
	if filterErr != nil {
		return filterErr
	}

	output, err := h.travelPlanUC.SearchTravelPlans(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"travel_plans": output.Plans,
		"total":        output.Total,
	}, "Travel plans retrieved successfully")
}

// travelPlanFilterFromQuery builds the list filter from query parameters.
func (h *TravelPlanHandler) travelPlanFilterFromQuery(c echo.Context) (repository.TravelPlanFilter, error) {
	filter := repository.TravelPlanFilter{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Unmatched:   c.QueryParam("unmatched") == "true",
		Page:        queryInt(c, "page", 1),
		PerPage:     queryInt(c, "per_page", 20),
	}

	if raw := c.QueryParam("travel_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, response.BadRequest(c, "VALIDATION_ERROR", "travel_from must be RFC 3339")
		}
		filter.TravelFrom = &from
	}

	if raw := c.QueryParam("travel_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, response.BadRequest(c, "VALIDATION_ERROR", "travel_to must be RFC 3339")
		}
		filter.TravelTo = &to
	}

	return filter, nil
}

// UpdateTravelPlan applies edits to a plan owned by the caller.
func (h *TravelPlanHandler) UpdateTravelPlan(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	planID, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateTravelPlanRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid travel plan input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.UpdateTravelPlanInput{
		Origin:          req.Origin,
		Destination:     req.Destination,
		TravelDate:      req.TravelDate,
		Capacity:        req.Capacity,
		AvailableWeight: req.AvailableWeight,
		FlightNumber:    req.FlightNumber,
		DepartureTime:   req.DepartureTime,
		ArrivalTime:     req.ArrivalTime,
		AirlineName:     req.AirlineName,
	}
	if req.Status != nil {
		status := entity.TravelPlanStatus(*req.Status)
		input.Status = &status
	}

	plan, err := h.travelPlanUC.UpdateTravelPlan(c.Request().Context(), principal, planID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, plan, "Travel plan updated successfully")
}

// DeleteTravelPlan removes an unmatched plan owned by the caller.
func (h *TravelPlanHandler) DeleteTravelPlan(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	planID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.travelPlanUC.DeleteTravelPlan(c.Request().Context(), principal, planID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Travel plan deleted successfully")
}
