package identity

import (
	"context"
	"fmt"

	domainRepo "hospital-directory/internal/domain/repository"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const roleClaim = "role"

// authClient is the subset of *auth.Client the directory needs.
type authClient interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
}

// FirebaseRoleDirectory stores the role as the "role" custom claim on a
// Firebase Auth account. Other custom claims are left as they are.
type FirebaseRoleDirectory struct {
	client authClient
}

func NewFirebaseRoleDirectory(ctx context.Context, credentialsFile string) (*FirebaseRoleDirectory, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firebase auth client: %w", err)
	}

	return &FirebaseRoleDirectory{client: client}, nil
}

var _ domainRepo.RoleDirectory = (*FirebaseRoleDirectory)(nil)

func (d *FirebaseRoleDirectory) GetRole(ctx context.Context, externalID string) (*string, error) {
	user, err := d.getUser(ctx, externalID)
	if err != nil {
		return nil, err
	}

	role, ok := user.CustomClaims[roleClaim].(string)
	if !ok || role == "" {
		return nil, nil
	}
	return &role, nil
}

func (d *FirebaseRoleDirectory) SetRole(ctx context.Context, externalID string, role *string) error {
	user, err := d.getUser(ctx, externalID)
	if err != nil {
		return err
	}

	claims := make(map[string]interface{}, len(user.CustomClaims)+1)
	for k, v := range user.CustomClaims {
		claims[k] = v
	}
	if role == nil {
		delete(claims, roleClaim)
	} else {
		claims[roleClaim] = *role
	}

	if err := d.client.SetCustomUserClaims(ctx, externalID, claims); err != nil {
		if auth.IsUserNotFound(err) {
			return domainRepo.ErrAccountNotFound
		}
		return fmt.Errorf("failed to update custom claims: %w", err)
	}
	return nil
}

func (d *FirebaseRoleDirectory) getUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	user, err := d.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, domainRepo.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get firebase user: %w", err)
	}
	return user, nil
}
