package repository

import (
	"context"
	"errors"
	"strings"

	"hospital-directory/internal/domain/entity"
	domainRepo "hospital-directory/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(email))
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	return r.first(ctx, "external_id = ?", externalID)
}

// Search matches query case-insensitively against name and email. An empty
// query lists every user.
func (r *userRepository) Search(ctx context.Context, query string) ([]entity.User, error) {
	var users []entity.User
	q := r.db.WithContext(ctx)
	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if err := q.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) first(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
