package usecase

import (
	"context"
	"errors"

	"hospital-directory/internal/converter"
	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/domain/entity"
	"hospital-directory/internal/domain/repository"
	"hospital-directory/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotAuthorized   = errors.New("caller is not a hospital admin")
	ErrInvalidRole     = errors.New("invalid role")
	ErrAccountNotFound = errors.New("account not found")
)

// Caller is the authenticated principal performing an admin action.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

func (c Caller) isHospitalAdmin() bool {
	return c.Role == entity.RoleHospitalAdmin
}

type RoleUsecase interface {
	SetRole(ctx context.Context, caller Caller, externalID string, req *dto.SetRoleRequest) (*dto.RoleResponse, error)
	RemoveRole(ctx context.Context, caller Caller, externalID string) (*dto.RoleResponse, error)
	ListUsers(ctx context.Context, caller Caller, query string) (*dto.UserListResponse, error)
}

type roleUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	directory    repository.RoleDirectory
	tokens       service.TokenStore
	auditService service.AuditService
}

func NewRoleUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	directory repository.RoleDirectory,
	tokens service.TokenStore,
	auditService service.AuditService,
) RoleUsecase {
	return &roleUsecase{
		log:          log,
		userRepo:     userRepo,
		directory:    directory,
		tokens:       tokens,
		auditService: auditService,
	}
}

func (u *roleUsecase) SetRole(ctx context.Context, caller Caller, externalID string, req *dto.SetRoleRequest) (*dto.RoleResponse, error) {
	if !caller.isHospitalAdmin() {
		return nil, ErrNotAuthorized
	}
	if !entity.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	role := req.Role
	return u.replaceRole(ctx, caller, externalID, &role, entity.AuditActionRoleSet)
}

func (u *roleUsecase) RemoveRole(ctx context.Context, caller Caller, externalID string) (*dto.RoleResponse, error) {
	if !caller.isHospitalAdmin() {
		return nil, ErrNotAuthorized
	}

	return u.replaceRole(ctx, caller, externalID, nil, entity.AuditActionRoleRemove)
}

func (u *roleUsecase) ListUsers(ctx context.Context, caller Caller, query string) (*dto.UserListResponse, error) {
	if !caller.isHospitalAdmin() {
		return nil, ErrNotAuthorized
	}

	users, err := u.userRepo.Search(ctx, query)
	if err != nil {
		u.log.Warnf("Failed to search users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *roleUsecase) replaceRole(ctx context.Context, caller Caller, externalID string, role *string, action string) (*dto.RoleResponse, error) {
	oldRole, err := u.directory.GetRole(ctx, externalID)
	if err != nil {
		return nil, u.directoryError("read", err)
	}

	if err := u.directory.SetRole(ctx, externalID, role); err != nil {
		return nil, u.directoryError("update", err)
	}

	log := u.log.WithFields(logrus.Fields{
		"external_id": externalID,
		"action":      action,
	})
	log.Info("Role claim updated")

	u.revokeSessions(ctx, externalID)

	// the role change stands even when the audit row cannot be written
	if err := u.auditService.LogUpdate(ctx, &caller.UserID, action, "user", externalID, oldRole, role); err != nil {
		log.Warnf("Role changed without audit record: %+v", err)
	}

	return &dto.RoleResponse{
		ExternalID: externalID,
		Role:       role,
	}, nil
}

func (u *roleUsecase) directoryError(op string, err error) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return ErrAccountNotFound
	}
	u.log.Warnf("Failed to %s role claim: %+v", op, err)
	return err
}

// revokeSessions drops the account's issued tokens so the old role claim
// stops authorising requests. Accounts without a local user have no sessions.
func (u *roleUsecase) revokeSessions(ctx context.Context, externalID string) {
	log := u.log.WithField("external_id", externalID)

	user, err := u.userRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		log.Warnf("Failed to find user for session revocation: %+v", err)
		return
	}
	if user == nil {
		return
	}

	if err := u.tokens.RevokeAll(ctx, user.ID); err != nil {
		log.Warnf("Failed to revoke sessions after role change: %+v", err)
	}
}
