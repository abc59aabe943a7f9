package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel mirrors the 'notifications' table. Data is a JSONB
// blob of event-specific attributes.
type NotificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Category  string    `gorm:"type:varchar(20);not null;index"`
	Type      string    `gorm:"type:varchar(40);not null"`
	Message   string    `gorm:"type:text;not null"`
	Data      []byte    `gorm:"type:jsonb"`
	Read      bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ActivityLogModel mirrors the 'activity_logs' table.
type ActivityLogModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Action    string     `gorm:"type:varchar(40);not null"`
	Entity    string     `gorm:"type:varchar(40);not null"`
	EntityID  *uuid.UUID `gorm:"type:uuid"`
	Metadata  []byte     `gorm:"type:jsonb"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
