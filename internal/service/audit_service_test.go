package service

import (
	"context"
	"errors"
	"testing"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditRepo struct {
	logs []*entity.AuditLog
	err  error
}

func (f *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, log)
	return nil
}

func TestAuditService_LogUpdate(t *testing.T) {
	logger, _ := test.NewNullLogger()
	repo := &fakeAuditRepo{}
	svc := NewAuditService(logger, repo)
	actor := uuid.New()

	err := svc.LogUpdate(context.Background(), &actor, entity.AuditActionPatientUpdate, "patient", "p-1", "old", "new")
	require.NoError(t, err)

	require.Len(t, repo.logs, 1)
	got := repo.logs[0]
	assert.Equal(t, &actor, got.ActorID)
	assert.Equal(t, entity.AuditActionPatientUpdate, got.Action)
	assert.Equal(t, "patient", got.EntityName)
	assert.Equal(t, "p-1", got.EntityID)
	assert.Equal(t, "old", got.Metadata["old_value"])
	assert.Equal(t, "new", got.Metadata["new_value"])
}

func TestAuditService_LogCreateAndDelete(t *testing.T) {
	logger, _ := test.NewNullLogger()
	repo := &fakeAuditRepo{}
	svc := NewAuditService(logger, repo)

	require.NoError(t, svc.LogCreate(context.Background(), nil, entity.AuditActionPatientCreate, "patient", "p-1", "v"))
	require.NoError(t, svc.LogDelete(context.Background(), nil, entity.AuditActionPatientDelete, "patient", "p-1", "v"))

	require.Len(t, repo.logs, 2)
	assert.Nil(t, repo.logs[0].Metadata["old_value"])
	assert.Equal(t, "v", repo.logs[0].Metadata["new_value"])
	assert.Equal(t, "v", repo.logs[1].Metadata["old_value"])
	assert.Nil(t, repo.logs[1].Metadata["new_value"])
}

func TestAuditService_RepositoryFailureIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	svc := NewAuditService(logger, &fakeAuditRepo{err: errors.New("db down")})

	err := svc.LogCreate(context.Background(), nil, entity.AuditActionUserRegister, "user", "u-1", nil)

	assert.Error(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
