package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientAttrs are the values a new patient is built from.
type PatientAttrs struct {
	Name          string
	DateOfBirth   time.Time
	Gender        Gender
	ContactNumber *string
	Address       *string
	UserID        uuid.UUID
}

// PatientPatch carries optional replacements for a patient's fields.
// A field is applied only when it is set and non-empty.
type PatientPatch struct {
	Name          *string
	DateOfBirth   *time.Time
	Gender        *Gender
	ContactNumber *string
	Address       *string
}

// BuildPatient returns an unsaved patient with exactly the given id.
// Field constraints are enforced when the record is saved.
func BuildPatient(id PatientID, attrs PatientAttrs) *Patient {
	return &Patient{
		ID:            id.UUID(),
		UserID:        attrs.UserID,
		Name:          attrs.Name,
		DateOfBirth:   attrs.DateOfBirth,
		Gender:        attrs.Gender,
		ContactNumber: attrs.ContactNumber,
		Address:       attrs.Address,
	}
}

// BuildPatientWithID is BuildPatient with a freshly minted id.
func BuildPatientWithID(attrs PatientAttrs) *Patient {
	return BuildPatient(NewPatientID(), attrs)
}

// UpdatePatient applies patch to p in place and returns p. Empty values
// leave the current field untouched, so a field cannot be cleared here.
func UpdatePatient(p *Patient, patch PatientPatch) *Patient {
	if patch.Name != nil && *patch.Name != "" {
		p.Name = *patch.Name
	}
	if patch.DateOfBirth != nil && !patch.DateOfBirth.IsZero() {
		p.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Gender != nil && *patch.Gender != "" {
		p.Gender = *patch.Gender
	}
	if patch.ContactNumber != nil && *patch.ContactNumber != "" {
		v := *patch.ContactNumber
		p.ContactNumber = &v
	}
	if patch.Address != nil && *patch.Address != "" {
		v := *patch.Address
		p.Address = &v
	}
	return p
}
