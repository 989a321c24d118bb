package usecase

import (
	"context"
	"errors"

	"hospital-directory/internal/domain/entity"
	"hospital-directory/internal/domain/repository"
	"hospital-directory/internal/service"

	"github.com/sirupsen/logrus"
)

// AdminBootstrap grants hospital_admin to a configured set of accounts
// without an authenticated caller. It is how a fresh deployment gets its
// first admin.
type AdminBootstrap struct {
	log          *logrus.Logger
	directory    repository.RoleDirectory
	auditService service.AuditService
	externalIDs  []string
	listed       map[string]struct{}
}

func NewAdminBootstrap(
	log *logrus.Logger,
	directory repository.RoleDirectory,
	auditService service.AuditService,
	externalIDs []string,
) *AdminBootstrap {
	listed := make(map[string]struct{}, len(externalIDs))
	for _, id := range externalIDs {
		listed[id] = struct{}{}
	}
	return &AdminBootstrap{
		log:          log,
		directory:    directory,
		auditService: auditService,
		externalIDs:  externalIDs,
		listed:       listed,
	}
}

// Apply grants every listed account that already exists. Accounts not yet
// registered are skipped; they are granted when they register.
func (b *AdminBootstrap) Apply(ctx context.Context) error {
	for _, externalID := range b.externalIDs {
		if _, err := b.grant(ctx, externalID); err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				b.log.WithField("external_id", externalID).Warn("Bootstrap admin not registered yet")
				continue
			}
			return err
		}
	}
	return nil
}

// GrantIfListed grants hospital_admin when externalID is a bootstrap admin.
// It reports whether the account ended up with the role.
func (b *AdminBootstrap) GrantIfListed(ctx context.Context, externalID string) (bool, error) {
	if b == nil {
		return false, nil
	}
	if _, ok := b.listed[externalID]; !ok {
		return false, nil
	}
	return b.grant(ctx, externalID)
}

func (b *AdminBootstrap) grant(ctx context.Context, externalID string) (bool, error) {
	log := b.log.WithField("external_id", externalID)

	current, err := b.directory.GetRole(ctx, externalID)
	if err != nil {
		return false, err
	}
	if current != nil && *current == entity.RoleHospitalAdmin {
		return true, nil
	}

	role := entity.RoleHospitalAdmin
	if err := b.directory.SetRole(ctx, externalID, &role); err != nil {
		log.Warnf("Failed to grant bootstrap admin: %+v", err)
		return false, err
	}
	log.Info("Granted hospital_admin to bootstrap admin")

	// nil actor: the service itself made the change
	if err := b.auditService.LogUpdate(ctx, nil, entity.AuditActionRoleSet, "user", externalID, current, &role); err != nil {
		log.Warnf("Bootstrap admin granted without audit record: %+v", err)
	}
	return true, nil
}
