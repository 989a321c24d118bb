package repository

import (
	"context"
	"errors"

	"hospital-directory/internal/domain/entity"
	domainRepo "hospital-directory/internal/domain/repository"

	"gorm.io/gorm"
)

// postgresRoleDirectory keeps the role claim in users.role.
type postgresRoleDirectory struct {
	db *gorm.DB
}

func NewPostgresRoleDirectory(db *gorm.DB) domainRepo.RoleDirectory {
	return &postgresRoleDirectory{db: db}
}

func (d *postgresRoleDirectory) GetRole(ctx context.Context, externalID string) (*string, error) {
	var user entity.User
	err := d.db.WithContext(ctx).Select("role").Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRepo.ErrAccountNotFound
		}
		return nil, err
	}
	return user.Role, nil
}

func (d *postgresRoleDirectory) SetRole(ctx context.Context, externalID string, role *string) error {
	result := d.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("external_id = ?", externalID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrAccountNotFound
	}
	return nil
}
