package entity

import (
	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	FullName string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive *bool     `gorm:"not null;default:true;index" json:"is_active"`
	Timestamps

	// Relationships
	Patients []Patient `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"patients,omitempty"`
}

func (User) TableName() string {
	return "users"
}
