package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/usecase"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type stubAuditLogUsecase struct {
	err        error
	lastFilter *dto.AuditLogFilterRequest
	lastID     int64
	lastExtID  string
}

func (s *stubAuditLogUsecase) GetAllAuditLogs(ctx context.Context, req *dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error) {
	s.lastFilter = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AuditLogListResponse{Logs: []dto.AuditLogResponse{}}, nil
}

func (s *stubAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AuditLogResponse{ID: id}, nil
}

func (s *stubAuditLogUsecase) GetRoleHistory(ctx context.Context, externalID string) (*dto.AuditLogListResponse, error) {
	s.lastExtID = externalID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AuditLogListResponse{Logs: []dto.AuditLogResponse{}}, nil
}

func newAuditRouter(uc usecase.AuditLogUsecase) *mux.Router {
	h := NewAuditLogHandler(uc)
	r := mux.NewRouter()
	r.HandleFunc("/audit-logs", h.GetAllAuditLogs).Methods(http.MethodGet)
	r.HandleFunc("/audit-logs/{id}", h.GetAuditLog).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/role-history", h.GetRoleHistory).Methods(http.MethodGet)
	return r
}

func TestGetAllAuditLogs_PassesFilter(t *testing.T) {
	uc := &stubAuditLogUsecase{}
	rec := httptest.NewRecorder()
	newAuditRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit-logs?action=user.role.&external_id=uid-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &dto.AuditLogFilterRequest{Action: "user.role.", ExternalID: "uid-1"}, uc.lastFilter)
}

func TestGetRoleHistory(t *testing.T) {
	uc := &stubAuditLogUsecase{}
	rec := httptest.NewRecorder()
	newAuditRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/uid-7/role-history", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-7", uc.lastExtID)

	uc.err = errors.New("db down")
	rec = httptest.NewRecorder()
	newAuditRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/uid-7/role-history", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetAuditLog(t *testing.T) {
	cases := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"found", "/audit-logs/12", nil, http.StatusOK},
		{"bad id", "/audit-logs/twelve", nil, http.StatusBadRequest},
		{"missing", "/audit-logs/12", usecase.ErrAuditLogNotFound, http.StatusNotFound},
		{"failure", "/audit-logs/12", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubAuditLogUsecase{err: tc.err}
			rec := httptest.NewRecorder()
			newAuditRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
