package usecase

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"hospital-directory/internal/domain/entity"
	"hospital-directory/internal/domain/repository"
	"hospital-directory/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRecordStore struct {
	doctors       []entity.Doctor
	hospitals     []entity.Hospital
	doctorLoads   atomic.Int32
	hospitalLoads atomic.Int32
}

func (f *fakeRecordStore) LoadDoctors(ctx context.Context) []entity.Doctor {
	f.doctorLoads.Add(1)
	out := make([]entity.Doctor, len(f.doctors))
	copy(out, f.doctors)
	return out
}

func (f *fakeRecordStore) LoadHospitals(ctx context.Context) []entity.Hospital {
	f.hospitalLoads.Add(1)
	out := make([]entity.Hospital, len(f.hospitals))
	copy(out, f.hospitals)
	return out
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   []*entity.User
	findErr error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
		if u.ExternalID == user.ExternalID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_external_id_key"}
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == strings.ToLower(email) })
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ExternalID == externalID })
}

func (f *fakeUserRepo) Search(ctx context.Context, query string) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []entity.User
	q := strings.ToLower(query)
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(u.Email, q) {
			out = append(out, *u)
		}
	}
	return out, nil
}

// fakeDirectory is an in-memory role directory keyed by external id.
type fakeDirectory struct {
	mu       sync.Mutex
	roles    map[string]*string
	getErr   error
	setErr   error
	setCalls int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{roles: map[string]*string{}}
}

func (f *fakeDirectory) add(externalID string, role *string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[externalID] = role
}

func (f *fakeDirectory) GetRole(ctx context.Context, externalID string) (*string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	role, ok := f.roles[externalID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return role, nil
}

func (f *fakeDirectory) SetRole(ctx context.Context, externalID string, role *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	if _, ok := f.roles[externalID]; !ok {
		return repository.ErrAccountNotFound
	}
	f.roles[externalID] = role
	return nil
}

type memTokenStore struct {
	mu         sync.Mutex
	tokens     map[string]bool
	revokedAll []uuid.UUID
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: map[string]bool{}}
}

func memTokenKey(userID uuid.UUID, tokenType jwt.TokenType, tokenID string) string {
	return string(tokenType) + ":" + userID.String() + ":" + tokenID
}

func (s *memTokenStore) Store(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[memTokenKey(userID, tokenType, tokenID)] = true
	return nil
}

func (s *memTokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[memTokenKey(userID, tokenType, tokenID)], nil
}

func (s *memTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, memTokenKey(userID, tokenType, tokenID))
	return nil
}

func (s *memTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revokedAll = append(s.revokedAll, userID)
	prefix := ":" + userID.String() + ":"
	for key := range s.tokens {
		if strings.Contains(key, prefix) {
			delete(s.tokens, key)
		}
	}
	return nil
}

type auditEntry struct {
	userID   *uuid.UUID
	action   string
	entityID string
	oldValue interface{}
	newValue interface{}
}

type fakeAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (f *fakeAuditService) LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, auditEntry{userID: userID, action: action, entityID: entityID, newValue: newValue})
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, auditEntry{userID: userID, action: action, entityID: entityID, oldValue: oldValue, newValue: newValue})
	return nil
}

func strPtr(s string) *string { return &s }
