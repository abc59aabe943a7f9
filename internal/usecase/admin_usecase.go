package usecase

import (
	"context"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// MatchInput links one order to one travel plan.
type MatchInput struct {
	OrderID      uuid.UUID
	TravelPlanID uuid.UUID
}

// MatchOutput reports the state of both sides after matching.
type MatchOutput struct {
	Order      *entity.Order
	TravelPlan *entity.TravelPlan
	// AlreadyMatched is true when the pair was linked before this call and
	// nothing changed.
	AlreadyMatched bool
}

// AdminUsecase defines the interface for admin-only business operations.
type AdminUsecase interface {
	// UpdateOrderStatus moves an order through its lifecycle and notifies
	// the sender. Terminal orders reject further transitions.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// MatchOrderToTravelPlan links an order to a travel plan in one
	// transaction: the order moves to In Transit, the plan records the
	// order and both parties are notified. Matching the same pair again is
	// a no-op.
	MatchOrderToTravelPlan(ctx context.Context, input MatchInput) (*MatchOutput, error)

	// ListUsers returns all users with the given role.
	ListUsers(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// ListKYCSubmissions returns KYC submissions with the given status.
	ListKYCSubmissions(ctx context.Context, status entity.KYCStatus) ([]*entity.KYC, error)

	// ReviewKYC approves or rejects a submission and, on approval, marks
	// the user's KYC reference.
	ReviewKYC(ctx context.Context, kycID uuid.UUID, approve bool) (*entity.KYC, error)

	// ListRecentActivity returns the latest audit entries across all users.
	ListRecentActivity(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}
