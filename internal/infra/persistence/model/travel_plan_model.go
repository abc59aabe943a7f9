package model

import (
	"time"

	"github.com/google/uuid"
)

// TravelPlanModel mirrors the 'travel_plans' table. MatchedOrders is a
// JSONB array of order UUIDs.
type TravelPlanModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Origin          string    `gorm:"type:varchar(100);not null;index"`
	Destination     string    `gorm:"type:varchar(100);not null;index"`
	TravelDate      time.Time `gorm:"not null"`
	Capacity        int       `gorm:"not null"`
	AvailableWeight float64   `gorm:"type:decimal(8,2);not null"`
	FlightNumber    string    `gorm:"type:varchar(10);not null"`
	DepartureTime   time.Time
	ArrivalTime     time.Time
	AirlineName     string `gorm:"type:varchar(100)"`
	Status          string `gorm:"type:varchar(20);not null;default:'Scheduled'"`
	IsMatched       bool   `gorm:"not null;default:false;index"`
	MatchedOrders   []byte `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (TravelPlanModel) TableName() string {
	return "travel_plans"
}
