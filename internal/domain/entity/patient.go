package entity

import (
	"time"

	"hospital-management/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender is one of the fixed choices accepted for a patient.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the accepted choices in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

// PatientID identifies a patient before the record exists. Two ids are equal
// when they wrap the same UUID.
type PatientID struct {
	value uuid.UUID
}

// NewPatientID mints a random (version 4) id.
func NewPatientID() PatientID {
	return PatientID{value: uuid.New()}
}

func PatientIDFrom(id uuid.UUID) PatientID {
	return PatientID{value: id}
}

func (id PatientID) UUID() uuid.UUID {
	return id.value
}

func (id PatientID) String() string {
	return id.value.String()
}

// Patient stores a patient owned by a user account
type Patient struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,max=100"`
	DateOfBirth   time.Time `gorm:"type:date;not null" json:"date_of_birth" validate:"required"`
	Gender        Gender    `gorm:"type:varchar(50);not null" json:"gender" validate:"required,oneof=male female other"`
	ContactNumber *string   `gorm:"type:varchar(12)" json:"contact_number" validate:"omitempty,max=12"`
	Address       *string   `gorm:"type:varchar(350)" json:"address" validate:"omitempty,max=350"`
	Timestamps

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

// String renders the id only; contact number is nullable.
func (p *Patient) String() string {
	return "Patient(" + p.ID.String() + ")"
}

var patientValidator = validator.NewValidator()

// Validate checks the column constraints. The returned error is a
// *validator.ValidationError when a field is rejected.
func (p *Patient) Validate() error {
	return patientValidator.Struct(p)
}

func (p *Patient) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
