// Package model holds the GORM-specific structs mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	FullName             string     `gorm:"type:varchar(100);not null"`
	Email                string     `gorm:"type:varchar(255);unique;not null"`
	Country              string     `gorm:"type:varchar(100);not null"`
	State                string     `gorm:"type:varchar(100);not null"`
	PhoneNumber          string     `gorm:"type:varchar(30);not null"`
	Gender               string     `gorm:"type:varchar(10);not null"`
	Password             string     `gorm:"type:varchar(255);not null"`
	Role                 string     `gorm:"type:varchar(20);not null;index"`
	IsVerified           bool       `gorm:"not null;default:false"`
	KYCID                *uuid.UUID `gorm:"type:uuid"`
	ResetPasswordToken   string     `gorm:"type:varchar(255);index"`
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// AdminModel mirrors the 'admins' table.
type AdminModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username  string    `gorm:"type:varchar(100);unique;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminModel) TableName() string {
	return "admins"
}

// KYCModel mirrors the 'kyc_submissions' table.
type KYCModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ResidentialAddress string    `gorm:"type:text;not null"`
	DocumentURL        string    `gorm:"type:text;not null"`
	DocumentKey        string    `gorm:"type:text;not null"`
	Status             string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (KYCModel) TableName() string {
	return "kyc_submissions"
}
