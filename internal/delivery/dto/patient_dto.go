package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePatientRequest is the body of POST /patients. Column limits and the
// gender choice are enforced when the record is saved.
type CreatePatientRequest struct {
	Name          string `json:"name" validate:"required"`
	DateOfBirth   string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender        string `json:"gender" validate:"required"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

// UpdatePatientRequest is a partial update; absent or empty fields are kept.
type UpdatePatientRequest struct {
	Name          *string `json:"name"`
	DateOfBirth   *string `json:"date_of_birth"` // Format: YYYY-MM-DD
	Gender        *string `json:"gender"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
}

type PatientResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	DateOfBirth   string    `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	ContactNumber *string   `json:"contact_number"`
	Address       *string   `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Page     int               `json:"-"`
	Limit    int               `json:"-"`
	Total    int64             `json:"total"`
}
