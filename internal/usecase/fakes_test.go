package usecase

import (
	"context"
	"sort"
	"time"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.PatientRepository = (*fakePatientRepo)(nil)
	_ service.PatientCache         = (*fakePatientCache)(nil)
	_ service.TokenStore           = (*fakeTokenStore)(nil)
	_ service.AuditService         = (*fakeAuditService)(nil)
)

type fakeUserRepo struct {
	users     map[uuid.UUID]*entity.User
	createErr error
	findErr   error
	// patients is cleared of the user's rows on Delete, like ON DELETE CASCADE.
	patients *fakePatientRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) add(email, password string) *entity.User {
	active := true
	u := &entity.User{ID: uuid.New(), Email: email, Password: password, FullName: "Test User", IsActive: &active}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	if f.patients != nil {
		for pid, p := range f.patients.patients {
			if p.UserID == id {
				delete(f.patients.patients, pid)
			}
		}
	}
	return nil
}

type fakePatientRepo struct {
	patients   map[uuid.UUID]*entity.Patient
	createErr  error
	updateErr  error
	findCalls  int
	lastOffset int64
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

// Create runs the same checks as the gorm hooks.
func (f *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	if f.createErr != nil {
		return f.createErr
	}
	if err := patient.Validate(); err != nil {
		return err
	}
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt
	cp := *patient
	f.patients[patient.ID] = &cp
	return nil
}

func (f *fakePatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	f.findCalls++
	p, ok := f.patients[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePatientRepo) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]entity.Patient, int64, error) {
	var all []entity.Patient
	for _, p := range f.patients {
		if p.UserID == userID {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	f.lastOffset = int64(page-1) * int64(limit)
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakePatientRepo) ListIDsByUserID(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, p := range f.patients {
		if p.UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if err := patient.Validate(); err != nil {
		return err
	}
	patient.UpdatedAt = time.Now()
	cp := *patient
	f.patients[patient.ID] = &cp
	return nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.patients[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.patients, id)
	return nil
}

type fakePatientCache struct {
	entries map[uuid.UUID]entity.Patient
	getErr  error
	setErr  error
	deleted []uuid.UUID
}

func newFakePatientCache() *fakePatientCache {
	return &fakePatientCache{entries: make(map[uuid.UUID]entity.Patient)}
}

func (f *fakePatientCache) Get(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePatientCache) Set(ctx context.Context, patient *entity.Patient) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[patient.ID] = *patient
	return nil
}

func (f *fakePatientCache) Delete(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		delete(f.entries, id)
	}
	f.deleted = append(f.deleted, ids...)
	return nil
}

type fakeTokenStore struct {
	tokens     map[string]bool
	revokedAll []uuid.UUID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]bool)}
}

func tokenKey(tokenType jwt.TokenType, userID uuid.UUID, tokenID string) string {
	return string(tokenType) + ":" + userID.String() + ":" + tokenID
}

func (f *fakeTokenStore) Store(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	f.tokens[tokenKey(tokenType, userID, tokenID)] = true
	return nil
}

func (f *fakeTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	return f.tokens[tokenKey(tokenType, userID, tokenID)], nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	delete(f.tokens, tokenKey(tokenType, userID, tokenID))
	return nil
}

func (f *fakeTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	f.revokedAll = append(f.revokedAll, userID)
	return nil
}

type auditCall struct {
	action   string
	entityID string
}

type fakeAuditService struct {
	calls []auditCall
}

func (f *fakeAuditService) LogCreate(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	f.calls = append(f.calls, auditCall{action, entityID})
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	f.calls = append(f.calls, auditCall{action, entityID})
	return nil
}

func (f *fakeAuditService) LogDelete(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	f.calls = append(f.calls, auditCall{action, entityID})
	return nil
}
