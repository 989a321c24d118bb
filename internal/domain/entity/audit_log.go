package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	AuditActionUserRegister = "user.register"
	AuditActionRoleSet      = "user.role.set"
	AuditActionRoleRemove   = "user.role.remove"

	// AuditActionRolePrefix selects every role change.
	AuditActionRolePrefix = "user.role."
)

// AuditLog records a change to an account. UserID is the actor and is nil
// for changes made by the service itself, such as start-up admin grants.
type AuditLog struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID    `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string        `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  AuditMetadata `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time     `gorm:"autoCreateTime;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditMetadata is the jsonb payload of an audit row. EntityID holds the
// account's external id so role history can be looked up per account.
type AuditMetadata struct {
	Entity   string      `json:"entity"`
	EntityID string      `json:"entity_id"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

func (m AuditMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *AuditMetadata) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*m = AuditMetadata{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported audit metadata type %T", value)
	}
	return json.Unmarshal(data, m)
}

// AuditLogFilter narrows an audit listing. Zero fields match everything.
type AuditLogFilter struct {
	ActionPrefix string
	ExternalID   string
}

// Matches applies the filter to a single row.
func (f AuditLogFilter) Matches(log *AuditLog) bool {
	if f.ActionPrefix != "" && !strings.HasPrefix(log.Action, f.ActionPrefix) {
		return false
	}
	if f.ExternalID != "" && log.Metadata.EntityID != f.ExternalID {
		return false
	}
	return true
}
