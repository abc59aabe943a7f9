package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Images are stored as a JSONB
// array of {url, key} objects.
type OrderModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index"`
	PackageName           string    `gorm:"type:varchar(255);not null"`
	PackageDetails        string    `gorm:"type:text"`
	ItemDescription       string    `gorm:"type:text"`
	PackageValue          float64   `gorm:"type:decimal(12,2)"`
	QuantityInKg          float64   `gorm:"type:decimal(8,2);not null"`
	Price                 float64   `gorm:"type:decimal(12,2)"`
	AddressSendingFrom    string    `gorm:"type:text;not null"`
	AddressDeliveringTo   string    `gorm:"type:text;not null"`
	ReceiverName          string    `gorm:"type:varchar(100);not null"`
	ReceiverPhone         string    `gorm:"type:varchar(30);not null"`
	Images                []byte    `gorm:"type:jsonb"`
	Status                string    `gorm:"type:varchar(20);not null;default:'In Process';index"`
	Priority              string    `gorm:"type:varchar(20);not null;default:'Standard'"`
	TrackingNumber        string    `gorm:"type:varchar(30);unique;not null"`
	EstimatedDeliveryDate *time.Time
	SpecialInstructions   string `gorm:"type:text"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
