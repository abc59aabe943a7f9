package postgres

import (
	"context"
	"encoding/json"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// travelPlanRepository implements the repository.TravelPlanRepository interface.
type travelPlanRepository struct {
	db *gorm.DB
}

// NewTravelPlanRepository is the constructor for travelPlanRepository.
func NewTravelPlanRepository(db *gorm.DB) repository.TravelPlanRepository {
	return &travelPlanRepository{
		db: db,
	}
}

// Create persists a new travel plan.
func (repo *travelPlanRepository) Create(ctx context.Context, plan *entity.TravelPlan) error {
	planM, err := fromTravelPlanDomain(plan)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(planM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create travel plan")
	}

	plan.ID = planM.ID
	plan.CreatedAt = planM.CreatedAt
	plan.UpdatedAt = planM.UpdatedAt

	return nil
}

// FindByID retrieves a travel plan by its unique ID.
func (repo *travelPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPlan, error) {
	var planM model.TravelPlanModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&planM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTravelPlanNotFound
		}

		return nil, errors.Wrap(err, "failed to find travel plan by ID")
	}

	return toTravelPlanDomain(&planM)
}

// Update persists changes to an existing travel plan.
func (repo *travelPlanRepository) Update(ctx context.Context, plan *entity.TravelPlan) error {
	planM, err := fromTravelPlanDomain(plan)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.TravelPlanModel{}).
		Where("id = ?", plan.ID).
		Select("origin", "destination", "travel_date", "capacity", "available_weight",
			"flight_number", "departure_time", "arrival_time", "airline_name",
			"status", "is_matched", "matched_orders").
		Updates(planM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update travel plan")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTravelPlanNotFound
	}

	return nil
}

// Delete removes a travel plan.
func (repo *travelPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TravelPlanModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete travel plan")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTravelPlanNotFound
	}

	return nil
}

// List retrieves travel plans matching the filter, newest first, with the total count.
func (repo *travelPlanRepository) List(ctx context.Context, filter repository.TravelPlanFilter) ([]*entity.TravelPlan, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.TravelPlanModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Origin != "" {
		query = query.Where("origin ILIKE ?", "%"+filter.Origin+"%")
	}
	if filter.Destination != "" {
		query = query.Where("destination ILIKE ?", "%"+filter.Destination+"%")
	}
	if filter.TravelFrom != nil {
		query = query.Where("travel_date >= ?", *filter.TravelFrom)
	}
	if filter.TravelTo != nil {
		query = query.Where("travel_date <= ?", *filter.TravelTo)
	}
	if filter.Unmatched {
		query = query.Where("is_matched = false")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count travel plans")
	}

	if filter.SortByTravelDate {
		query = query.Order("travel_date ASC")
	} else {
		query = query.Order("created_at DESC")
	}
	if filter.PerPage > 0 {
		query = query.Limit(filter.PerPage)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.PerPage)
		}
	}

	var planModels []*model.TravelPlanModel
	if err := query.Find(&planModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list travel plans")
	}

	plans := make([]*entity.TravelPlan, 0, len(planModels))
	for _, planM := range planModels {
		plan, err := toTravelPlanDomain(planM)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, plan)
	}

	return plans, total, nil
}

// Count counts all travel plans.
func (repo *travelPlanRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.TravelPlanModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count travel plans")
	}

	return count, nil
}

// toTravelPlanDomain converts a persistence model to a domain entity.
func toTravelPlanDomain(data *model.TravelPlanModel) (*entity.TravelPlan, error) {
	var matchedOrders []uuid.UUID
	if len(data.MatchedOrders) > 0 {
		if err := json.Unmarshal(data.MatchedOrders, &matchedOrders); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal matched orders")
		}
	}

	return &entity.TravelPlan{
		ID:              data.ID,
		UserID:          data.UserID,
		Origin:          data.Origin,
		Destination:     data.Destination,
		TravelDate:      data.TravelDate,
		Capacity:        data.Capacity,
		AvailableWeight: data.AvailableWeight,
		FlightNumber:    data.FlightNumber,
		DepartureTime:   data.DepartureTime,
		ArrivalTime:     data.ArrivalTime,
		AirlineName:     data.AirlineName,
		Status:          entity.TravelPlanStatus(data.Status),
		IsMatched:       data.IsMatched,
		MatchedOrders:   matchedOrders,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}

// fromTravelPlanDomain converts a domain entity to a persistence model.
func fromTravelPlanDomain(data *entity.TravelPlan) (*model.TravelPlanModel, error) {
	var matchedOrders []byte
	if len(data.MatchedOrders) > 0 {
		encoded, err := json.Marshal(data.MatchedOrders)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal matched orders")
		}
		matchedOrders = encoded
	}

	return &model.TravelPlanModel{
		ID:              data.ID,
		UserID:          data.UserID,
		Origin:          data.Origin,
		Destination:     data.Destination,
		TravelDate:      data.TravelDate,
		Capacity:        data.Capacity,
		AvailableWeight: data.AvailableWeight,
		FlightNumber:    data.FlightNumber,
		DepartureTime:   data.DepartureTime,
		ArrivalTime:     data.ArrivalTime,
		AirlineName:     data.AirlineName,
		Status:          string(data.Status),
		IsMatched:       data.IsMatched,
		MatchedOrders:   matchedOrders,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}
