package impl

import (
	"context"
	"log/slog"

	deliverycontext "ladx/internal/delivery/context"
	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	kycRepo      repository.KYCRepository
	activityRepo repository.ActivityLogRepository
	notifier     usecase.Notifier
	logger       *slog.Logger
}

// AdminServiceParams holds dependencies for the admin service, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	UserRepo     repository.UserRepository
	KYCRepo      repository.KYCRepository
	ActivityRepo repository.ActivityLogRepository
	Notifier     usecase.Notifier
	Logger       *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		userRepo:     params.UserRepo,
		kycRepo:      params.KYCRepo,
		activityRepo: params.ActivityRepo,
		notifier:     params.Notifier,
		logger:       params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateOrderStatus moves an order through its lifecycle and notifies the sender.
func (srv *adminService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid order status")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.Status.IsTerminal() {
		return nil, domainerrors.ErrOrderTerminal
	}
	if order.Status == status {
		return order, nil
	}

	order.Status = status
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	srv.notifier.Notify(ctx, order.UserID, entity.NotificationOrderUpdated,
		"Your order "+order.TrackingNumber+" is now "+string(status)+".",
		map[string]any{"order_id": order.ID.String(), "status": string(status)})

	srv.log(ctx).Info("Order status updated",
		slog.String("order_id", order.ID.String()),
		slog.String("status", string(status)))

	return order, nil
}

// MatchOrderToTravelPlan links an order to a travel plan in one transaction.
// Both sides are updated atomically so a failure on either leaves neither
// half-matched. Matching an already-linked pair is a no-op.
func (srv *adminService) MatchOrderToTravelPlan(ctx context.Context, input usecase.MatchInput) (*usecase.MatchOutput, error) {
	var (
		order          *entity.Order
		plan           *entity.TravelPlan
		alreadyMatched bool
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()
		planRepo := repoFactory.NewTravelPlanRepository()

		var err error
		order, err = orderRepo.FindByID(ctx, input.OrderID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find order")
		}

		plan, err = planRepo.FindByID(ctx, input.TravelPlanID)
		if errors.Is(err, repository.ErrTravelPlanNotFound) {
			return domainerrors.ErrTravelPlanNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find travel plan")
		}

		if plan.HasMatchedOrder(order.ID) {
			alreadyMatched = true

			return nil
		}

		if order.Status.IsTerminal() {
			return domainerrors.ErrOrderTerminal
		}
		if order.Status == entity.OrderStatusInTransit {
			return domainerrors.ErrConflict.WrapMessage("order is already matched to a travel plan")
		}

		order.Status = entity.OrderStatusInTransit
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		plan.IsMatched = true
		plan.MatchedOrders = append(plan.MatchedOrders, order.ID)
		if err := planRepo.Update(ctx, plan); err != nil {
			return err
		}

		recordActivity(ctx, srv.log(ctx), repoFactory.NewActivityLogRepository(),
			order.UserID, "match", "order", &order.ID,
			map[string]any{"travel_plan_id": plan.ID.String()})

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !alreadyMatched {
		srv.notifier.Notify(ctx, order.UserID, entity.NotificationOrderMatched,
			"Your order "+order.TrackingNumber+" has been matched to a traveler.",
			map[string]any{"order_id": order.ID.String(), "travel_plan_id": plan.ID.String()})
		srv.notifier.Notify(ctx, plan.UserID, entity.NotificationTravelPlanMatched,
			"Order "+order.TrackingNumber+" has been matched to your travel plan.",
			map[string]any{"order_id": order.ID.String(), "travel_plan_id": plan.ID.String()})

		srv.log(ctx).Info("Order matched to travel plan",
			slog.String("order_id", order.ID.String()),
			slog.String("travel_plan_id", plan.ID.String()))
	}

	return &usecase.MatchOutput{
		Order:          order,
		TravelPlan:     plan,
		AlreadyMatched: alreadyMatched,
	}, nil
}

// ListUsers returns all users with the given role.
func (srv *adminService) ListUsers(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	if !role.IsValid() || role == entity.RoleAdmin {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("role must be sender or traveler")
	}

	users, err := srv.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// ListKYCSubmissions returns KYC submissions with the given status.
func (srv *adminService) ListKYCSubmissions(ctx context.Context, status entity.KYCStatus) ([]*entity.KYC, error) {
	submissions, err := srv.kycRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list KYC submissions")
	}

	return submissions, nil
}

// ReviewKYC approves or rejects a submission.
func (srv *adminService) ReviewKYC(ctx context.Context, kycID uuid.UUID, approve bool) (*entity.KYC, error) {
	kyc, err := srv.kycRepo.FindByID(ctx, kycID)
	if errors.Is(err, repository.ErrKYCNotFound) {
		return nil, domainerrors.ErrNotFound.WrapMessage("KYC submission not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find KYC submission")
	}

	if kyc.Status != entity.KYCStatusPending {
		return nil, domainerrors.ErrConflict.WrapMessage("KYC submission already reviewed")
	}

	if approve {
		kyc.Status = entity.KYCStatusApproved
	} else {
		kyc.Status = entity.KYCStatusRejected
	}

	if err := srv.kycRepo.Update(ctx, kyc); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("KYC reviewed",
		slog.String("kyc_id", kyc.ID.String()),
		slog.String("status", string(kyc.Status)))

	return kyc, nil
}

// ListRecentActivity returns the latest audit entries across all users.
func (srv *adminService) ListRecentActivity(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	logs, err := srv.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent activity")
	}

	return logs, nil
}
