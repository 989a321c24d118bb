package identity

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthClient struct {
	users     map[string]*auth.UserRecord
	getErr    error
	setErr    error
	setClaims map[string]interface{}
}

func (f *fakeAuthClient) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.users[uid], nil
}

func (f *fakeAuthClient) SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setClaims = claims
	f.users[uid].CustomClaims = claims
	return nil
}

func newFake(claims map[string]interface{}) *fakeAuthClient {
	return &fakeAuthClient{users: map[string]*auth.UserRecord{
		"uid-1": {UserInfo: &auth.UserInfo{UID: "uid-1"}, CustomClaims: claims},
	}}
}

func TestGetRole(t *testing.T) {
	d := &FirebaseRoleDirectory{client: newFake(map[string]interface{}{"role": "hospital_admin"})}

	role, err := d.GetRole(context.Background(), "uid-1")
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, "hospital_admin", *role)
}

func TestGetRole_NoClaim(t *testing.T) {
	d := &FirebaseRoleDirectory{client: newFake(nil)}

	role, err := d.GetRole(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Nil(t, role)
}

func TestSetRole_PreservesOtherClaims(t *testing.T) {
	fake := newFake(map[string]interface{}{"tier": "gold"})
	d := &FirebaseRoleDirectory{client: fake}

	role := "Member"
	require.NoError(t, d.SetRole(context.Background(), "uid-1", &role))

	assert.Equal(t, map[string]interface{}{"tier": "gold", "role": "Member"}, fake.setClaims)
}

func TestSetRole_NilRemovesClaim(t *testing.T) {
	fake := newFake(map[string]interface{}{"tier": "gold", "role": "hospital_admin"})
	d := &FirebaseRoleDirectory{client: fake}

	require.NoError(t, d.SetRole(context.Background(), "uid-1", nil))

	assert.Equal(t, map[string]interface{}{"tier": "gold"}, fake.setClaims)
	role, err := d.GetRole(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Nil(t, role)
}

func TestSetRole_PropagatesErrors(t *testing.T) {
	fake := newFake(nil)
	fake.setErr = errors.New("quota exceeded")
	d := &FirebaseRoleDirectory{client: fake}

	role := "Member"
	err := d.SetRole(context.Background(), "uid-1", &role)
	assert.ErrorIs(t, err, fake.setErr)

	fake.getErr = errors.New("unavailable")
	_, err = d.GetRole(context.Background(), "uid-1")
	assert.ErrorIs(t, err, fake.getErr)
}
