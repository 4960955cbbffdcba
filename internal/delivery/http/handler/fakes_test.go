package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	_ usecase.PatientUsecase = (*fakePatientUsecase)(nil)
	_ usecase.AuthUsecase    = (*fakeAuthUsecase)(nil)
)

type fakePatientUsecase struct {
	createFn func(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	getFn    func(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	listFn   func(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.PatientListResponse, error)
	updateFn func(ctx context.Context, actorID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	deleteFn func(ctx context.Context, actorID, patientID uuid.UUID) error
}

func (f *fakePatientUsecase) CreatePatient(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	return f.createFn(ctx, userID, req)
}

func (f *fakePatientUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	return f.getFn(ctx, patientID)
}

func (f *fakePatientUsecase) ListPatients(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.PatientListResponse, error) {
	return f.listFn(ctx, userID, page, limit)
}

func (f *fakePatientUsecase) UpdatePatient(ctx context.Context, actorID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	return f.updateFn(ctx, actorID, patientID, req)
}

func (f *fakePatientUsecase) DeletePatient(ctx context.Context, actorID, patientID uuid.UUID) error {
	return f.deleteFn(ctx, actorID, patientID)
}

type fakeAuthUsecase struct {
	registerFn      func(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	loginFn         func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	logoutFn        func(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error
	refreshFn       func(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	currentUserFn   func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	deleteAccountFn func(ctx context.Context, userID uuid.UUID) error
}

func (f *fakeAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error {
	return f.logoutFn(ctx, userID, accessTokenID, refreshToken)
}

func (f *fakeAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return f.refreshFn(ctx, req)
}

func (f *fakeAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return f.currentUserFn(ctx, userID)
}

func (f *fakeAuthUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return f.deleteAccountFn(ctx, userID)
}

// envelope mirrors response.Envelope with raw payloads for assertions.
type envelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    json.RawMessage            `json:"data"`
	Errors  map[string][]string        `json:"errors"`
	Meta    map[string]json.RawMessage `json:"meta"`
}

func newRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), userID, "jane@example.com", "token-1"))
}

func serve(t *testing.T, h http.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}
