package repository

import (
	"context"
	"errors"
)

// ErrAccountNotFound is returned by directory drivers for unknown account ids.
var ErrAccountNotFound = errors.New("account not found")

// RoleReader reads an account's role claim. A nil role means none is assigned.
type RoleReader interface {
	GetRole(ctx context.Context, externalID string) (*string, error)
}

// RoleWriter replaces an account's role claim. A nil role removes it.
type RoleWriter interface {
	SetRole(ctx context.Context, externalID string, role *string) error
}

type RoleDirectory interface {
	RoleReader
	RoleWriter
}
