package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

const (
	patientEntityName = "patient"
	dateLayout        = "2006-01-02"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, actorID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, actorID, patientID uuid.UUID) error
}

type patientUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	patientRepo  repository.PatientRepository
	patientCache service.PatientCache
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	patientCache service.PatientCache,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		patientCache: patientCache,
		auditService: auditService,
	}
}

// CreatePatient builds a patient owned by userID and saves it. Field
// constraint failures come back as *validator.ValidationError.
func (u *patientUsecase) CreatePatient(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	owner, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	patient := entity.BuildPatientWithID(entity.PatientAttrs{
		Name:          req.Name,
		DateOfBirth:   dob,
		Gender:        entity.Gender(req.Gender),
		ContactNumber: optional(req.ContactNumber),
		Address:       optional(req.Address),
		UserID:        owner.ID,
	})

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if isForeignKeyError(err, "user") {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"patient_id": patient.ID,
		"user_id":    owner.ID,
	}).Info("Patient created")

	resp := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, &userID, entity.AuditActionPatientCreate, patientEntityName, patient.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	cached, err := u.patientCache.Get(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to read patient cache: %+v", err)
	}
	if cached != nil {
		return converter.PatientToResponse(cached), nil
	}

	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if err := u.patientCache.Set(ctx, patient); err != nil {
		u.log.Warnf("Failed to write patient cache: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.PatientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	// Keep the row offset within int32 so (page-1)*limit cannot overflow.
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}

	patients, total, err := u.patientRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Page:     page,
		Limit:    limit,
		Total:    total,
	}, nil
}

// UpdatePatient applies the non-empty fields of req. Fields cannot be
// cleared through this operation.
func (u *patientUsecase) UpdatePatient(ctx context.Context, actorID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patch, err := patchFromRequest(req)
	if err != nil {
		return nil, err
	}

	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	oldValue := converter.PatientToResponse(patient)
	entity.UpdatePatient(patient, patch)

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	// Write through rather than evict: a reader still holding the old row
	// cannot replace a newer cached copy.
	if err := u.patientCache.Set(ctx, patient); err != nil {
		u.log.Warnf("Failed to refresh patient cache: %+v", err)
		u.evict(ctx, patient.ID)
	}

	newValue := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, &actorID, entity.AuditActionPatientUpdate, patientEntityName, patient.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, actorID, patientID uuid.UUID) error {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return err
	}

	if err := u.patientRepo.Delete(ctx, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientNotFound
		}
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	u.evict(ctx, patientID)

	if err := u.auditService.LogDelete(ctx, &actorID, entity.AuditActionPatientDelete, patientEntityName, patientID.String(), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *patientUsecase) findPatient(ctx context.Context, patientID uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *patientUsecase) evict(ctx context.Context, ids ...uuid.UUID) {
	if err := u.patientCache.Delete(ctx, ids...); err != nil {
		u.log.Warnf("Failed to evict patient cache: %+v", err)
	}
}

func patchFromRequest(req *dto.UpdatePatientRequest) (entity.PatientPatch, error) {
	patch := entity.PatientPatch{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	if req.Gender != nil {
		g := entity.Gender(*req.Gender)
		patch.Gender = &g
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return entity.PatientPatch{}, ErrInvalidDateFormat
		}
		patch.DateOfBirth = &dob
	}
	return patch, nil
}

// optional maps "" to a NULL column value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
