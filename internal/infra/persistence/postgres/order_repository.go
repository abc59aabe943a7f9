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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM, err := fromOrderDomain(order)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("tracking number collision")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM)
}

// FindByTrackingNumber retrieves an order by tracking number.
func (repo *orderRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("tracking_number = ?", trackingNumber).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by tracking number")
	}

	return toOrderDomain(&orderM)
}

// Update persists changes to an existing order.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM, err := fromOrderDomain(order)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Select("package_name", "package_details", "item_description", "package_value",
			"quantity_in_kg", "price", "address_sending_from", "address_delivering_to",
			"receiver_name", "receiver_phone", "images", "status", "priority",
			"estimated_delivery_date", "special_instructions").
		Updates(orderM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OrderModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// List retrieves orders matching the filter, newest first, with the total count.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", string(filter.Priority))
	}
	if filter.TrackingNumber != "" {
		query = query.Where("tracking_number = ?", filter.TrackingNumber)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	query = query.Order("created_at DESC")
	if filter.PerPage > 0 {
		query = query.Limit(filter.PerPage)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.PerPage)
		}
	}

	var orderModels []*model.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		order, err := toOrderDomain(orderM)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, total, nil
}

// CountByStatus counts orders per status.
func (repo *orderRepository) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders by status")
	}

	counts := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.OrderStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// toOrderDomain converts a persistence model to a domain entity.
func toOrderDomain(data *model.OrderModel) (*entity.Order, error) {
	var images []entity.OrderImage
	if len(data.Images) > 0 {
		if err := json.Unmarshal(data.Images, &images); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal order images")
		}
	}

	return &entity.Order{
		ID:                    data.ID,
		UserID:                data.UserID,
		PackageName:           data.PackageName,
		PackageDetails:        data.PackageDetails,
		ItemDescription:       data.ItemDescription,
		PackageValue:          data.PackageValue,
		QuantityInKg:          data.QuantityInKg,
		Price:                 data.Price,
		AddressSendingFrom:    data.AddressSendingFrom,
		AddressDeliveringTo:   data.AddressDeliveringTo,
		ReceiverName:          data.ReceiverName,
		ReceiverPhone:         data.ReceiverPhone,
		Images:                images,
		Status:                entity.OrderStatus(data.Status),
		Priority:              entity.OrderPriority(data.Priority),
		TrackingNumber:        data.TrackingNumber,
		EstimatedDeliveryDate: data.EstimatedDeliveryDate,
		SpecialInstructions:   data.SpecialInstructions,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}, nil
}

// fromOrderDomain converts a domain entity to a persistence model.
func fromOrderDomain(data *entity.Order) (*model.OrderModel, error) {
	var images []byte
	if len(data.Images) > 0 {
		encoded, err := json.Marshal(data.Images)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal order images")
		}
		images = encoded
	}

	return &model.OrderModel{
		ID:                    data.ID,
		UserID:                data.UserID,
		PackageName:           data.PackageName,
		PackageDetails:        data.PackageDetails,
		ItemDescription:       data.ItemDescription,
		PackageValue:          data.PackageValue,
		QuantityInKg:          data.QuantityInKg,
		Price:                 data.Price,
		AddressSendingFrom:    data.AddressSendingFrom,
		AddressDeliveringTo:   data.AddressDeliveringTo,
		ReceiverName:          data.ReceiverName,
		ReceiverPhone:         data.ReceiverPhone,
		Images:                images,
		Status:                string(data.Status),
		Priority:              string(data.Priority),
		TrackingNumber:        data.TrackingNumber,
		EstimatedDeliveryDate: data.EstimatedDeliveryDate,
		SpecialInstructions:   data.SpecialInstructions,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}, nil
}
