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

// travelPlanService implements the TravelPlanUsecase interface.
type travelPlanService struct {
	planRepo       repository.TravelPlanRepository
	activityRepo   repository.ActivityLogRepository
	flightVerifier service.FlightVerifier
	notifier       usecase.Notifier
	logger         *slog.Logger
}

// TravelPlanServiceParams holds dependencies for the travel plan service, injected by Fx.
type TravelPlanServiceParams struct {
	fx.In

	PlanRepo       repository.TravelPlanRepository
	ActivityRepo   repository.ActivityLogRepository
	FlightVerifier service.FlightVerifier
	Notifier       usecase.Notifier
	Logger         *slog.Logger
}

// NewTravelPlanService is the constructor for travelPlanService.
func NewTravelPlanService(params TravelPlanServiceParams) usecase.TravelPlanUsecase {
	return &travelPlanService{
		planRepo:       params.PlanRepo,
		activityRepo:   params.ActivityRepo,
		flightVerifier: params.FlightVerifier,
		notifier:       params.Notifier,
		logger:         params.Logger,
	}
}

func (srv *travelPlanService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTravelPlan verifies the flight number and creates the plan.
func (srv *travelPlanService) CreateTravelPlan(ctx context.Context, userID uuid.UUID, input usecase.CreateTravelPlanInput) (*entity.TravelPlan, error) {
	if input.Capacity < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("capacity must be at least 1")
	}

	plan := &entity.TravelPlan{
		UserID:          userID,
		Origin:          input.Origin,
		Destination:     input.Destination,
		TravelDate:      input.TravelDate,
		Capacity:        input.Capacity,
		AvailableWeight: input.AvailableWeight,
		FlightNumber:    input.FlightNumber,
		DepartureTime:   input.DepartureTime,
		ArrivalTime:     input.ArrivalTime,
		AirlineName:     input.AirlineName,
		Status:          entity.TravelPlanStatusScheduled,
	}

	// The flight check only runs when a flight number was supplied; plans
	// for trips without one are accepted as-is.
	if input.FlightNumber != "" {
		info, err := srv.flightVerifier.Verify(ctx, input.FlightNumber)
		if err != nil {
			return nil, errors.Wrap(err, "failed to verify flight")
		}
		if info == nil {
			return nil, domainerrors.ErrFlightInvalid
		}
		plan.FlightNumber = info.FlightNumber

		// Prefer the provider's schedule details when the lookup returned them.
		if info.AirlineName != "" {
			plan.AirlineName = info.AirlineName
		}
		if !info.DepartureTime.IsZero() {
			plan.DepartureTime = info.DepartureTime
		}
		if !info.ArrivalTime.IsZero() {
			plan.ArrivalTime = info.ArrivalTime
		}
	}

	if err := srv.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, userID, "create", "travel_plan", &plan.ID,
		map[string]any{"flight_number": plan.FlightNumber})
	srv.notifier.Notify(ctx, userID, entity.NotificationTravelPlanCreated,
		"Your travel plan "+plan.Origin+" to "+plan.Destination+" has been created.",
		map[string]any{"travel_plan_id": plan.ID.String()})

	srv.log(ctx).Info("Travel plan created", slog.String("travel_plan_id", plan.ID.String()))

	return plan, nil
}

// GetTravelPlan returns a plan the caller is allowed to see.
func (srv *travelPlanService) GetTravelPlan(ctx context.Context, caller usecase.Principal, planID uuid.UUID) (*entity.TravelPlan, error) {
	plan, err := srv.findPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	// A plan owned by someone else reads as missing so lookups do not
	// leak which ids exist.
	if !caller.IsAdmin() && plan.UserID != caller.ID {
		return nil, domainerrors.ErrTravelPlanNotFound
	}

	return plan, nil
}

// ListTravelPlans returns plans matching the filter.
func (srv *travelPlanService) ListTravelPlans(ctx context.Context, caller usecase.Principal, filter repository.TravelPlanFilter) (*usecase.TravelPlanListOutput, error) {
	// Non-admin callers only ever see their own plans.
	if !caller.IsAdmin() {
		filter.UserID = &caller.ID
	}

	return srv.list(ctx, filter)
}

// SearchTravelPlans finds plans by route and date window.
func (srv *travelPlanService) SearchTravelPlans(ctx context.Context, filter repository.TravelPlanFilter) (*usecase.TravelPlanListOutput, error) {
	// Search never exposes a specific user's plans by id, and orders by
	// the soonest travel date.
	filter.UserID = nil
	filter.SortByTravelDate = true

	return srv.list(ctx, filter)
}

// UpdateTravelPlan applies edits to a plan owned by the caller.
func (srv *travelPlanService) UpdateTravelPlan(ctx context.Context, caller usecase.Principal, planID uuid.UUID, input usecase.UpdateTravelPlanInput) (*entity.TravelPlan, error) {
	plan, err := srv.GetTravelPlan(ctx, caller, planID)
	if err != nil {
		return nil, err
	}

	// Plans with matched orders only accept status changes; the route and
	// capacity are frozen once a sender depends on them.
	if plan.IsMatched && hasNonStatusChange(input) {
		return nil, domainerrors.ErrConflict.WrapMessage("matched travel plans only accept status changes")
	}

	if input.FlightNumber != nil && *input.FlightNumber != "" && *input.FlightNumber != plan.FlightNumber {
		info, err := srv.flightVerifier.Verify(ctx, *input.FlightNumber)
		if err != nil {
			return nil, errors.Wrap(err, "failed to verify flight")
		}
		if info == nil {
			return nil, domainerrors.ErrFlightInvalid
		}
		plan.FlightNumber = info.FlightNumber
	}

	applyTravelPlanUpdate(plan, input)
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid travel plan status")
	}
	if plan.Capacity < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("capacity must be at least 1")
	}

	if err := srv.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, caller.ID, "update", "travel_plan", &plan.ID, nil)
	srv.notifier.Notify(ctx, plan.UserID, entity.NotificationTravelPlanUpdated,
		"Your travel plan "+plan.Origin+" to "+plan.Destination+" has been updated.",
		map[string]any{"travel_plan_id": plan.ID.String()})

	return plan, nil
}

// DeleteTravelPlan removes an unmatched plan owned by the caller.
func (srv *travelPlanService) DeleteTravelPlan(ctx context.Context, caller usecase.Principal, planID uuid.UUID) error {
	plan, err := srv.GetTravelPlan(ctx, caller, planID)
	if err != nil {
		return err
	}

	if plan.IsMatched {
		return domainerrors.ErrConflict.WrapMessage("matched travel plans cannot be deleted")
	}

	if err := srv.planRepo.Delete(ctx, planID); err != nil {
		return err
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, caller.ID, "delete", "travel_plan", &planID, nil)
	srv.notifier.Notify(ctx, plan.UserID, entity.NotificationTravelPlanDeleted,
		"Your travel plan "+plan.Origin+" to "+plan.Destination+" has been removed.",
		map[string]any{"travel_plan_id": planID.String()})

	return nil
}

func (srv *travelPlanService) list(ctx context.Context, filter repository.TravelPlanFilter) (*usecase.TravelPlanListOutput, error) {
	plans, total, err := srv.planRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list travel plans")
	}

	return &usecase.TravelPlanListOutput{Plans: plans, Total: total}, nil
}

func (srv *travelPlanService) findPlan(ctx context.Context, planID uuid.UUID) (*entity.TravelPlan, error) {
	plan, err := srv.planRepo.FindByID(ctx, planID)
	if errors.Is(err, repository.ErrTravelPlanNotFound) {
		return nil, domainerrors.ErrTravelPlanNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find travel plan")
	}

	return plan, nil
}

func hasNonStatusChange(input usecase.UpdateTravelPlanInput) bool {
	return input.Origin != nil || input.Destination != nil || input.TravelDate != nil ||
		input.Capacity != nil || input.AvailableWeight != nil || input.FlightNumber != nil ||
		input.DepartureTime != nil || input.ArrivalTime != nil || input.AirlineName != nil
}

func applyTravelPlanUpdate(plan *entity.TravelPlan, input usecase.UpdateTravelPlanInput) {
	if input.Origin != nil {
		plan.Origin = *input.Origin
	}
	if input.Destination != nil {
		plan.Destination = *input.Destination
	}
	if input.TravelDate != nil {
		plan.TravelDate = *input.TravelDate
	}
	if input.Capacity != nil {
		plan.Capacity = *input.Capacity
	}
	if input.AvailableWeight != nil {
		plan.AvailableWeight = *input.AvailableWeight
	}
	if input.DepartureTime != nil {
		plan.DepartureTime = *input.DepartureTime
	}
	if input.ArrivalTime != nil {
		plan.ArrivalTime = *input.ArrivalTime
	}
	if input.AirlineName != nil {
		plan.AirlineName = *input.AirlineName
	}
	if input.Status != nil {
		plan.Status = *input.Status
	}
}
