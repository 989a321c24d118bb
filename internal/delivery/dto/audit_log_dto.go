package dto

import (
	"time"

	"hospital-directory/internal/domain/entity"
)

// Request DTOs

// AuditLogFilterRequest carries the listing's query-string filters. Action is
// a prefix, so "user.role." selects every role change.
type AuditLogFilterRequest struct {
	Action     string
	ExternalID string
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64                `json:"id"`
	User      *UserResponse        `json:"user,omitempty"`
	Action    string               `json:"action"`
	Metadata  entity.AuditMetadata `json:"metadata"`
	CreatedAt time.Time            `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
