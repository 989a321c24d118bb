package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a local account. ExternalID is the account id at the identity
// provider and is what role changes are addressed by.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ExternalID  string    `gorm:"column:external_id;type:varchar(255);uniqueIndex;not null" json:"external_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	Role        *string   `gorm:"type:varchar(50)" json:"role"`
	PhoneNumber string    `gorm:"type:varchar(32);not null" json:"phone_number"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RoleName returns the role or "" when none is assigned.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return *u.Role
}
