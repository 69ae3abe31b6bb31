package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"agrisathi/internal/apperr"
	"agrisathi/model"
)

type fakeUserStore struct {
	byPhone map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byPhone: map[string]model.User{}}
}

func (f *fakeUserStore) Create(ctx context.Context, u model.User) (model.User, error) {
	if _, ok := f.byPhone[u.Phone]; ok {
		return model.User{}, apperr.Validation("phone number already registered")
	}
	u.ID = bson.NewObjectID()
	f.byPhone[u.Phone] = u
	return u, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id bson.ObjectID) (model.User, error) {
	for _, u := range f.byPhone {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, apperr.NotFound("user not found")
}

func (f *fakeUserStore) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	u, ok := f.byPhone[phone]
	if !ok {
		return model.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret", "officer-code", zap.NewNop())

	u, token, err := svc.Register(context.Background(), "Ravi", "+919900112233", "strongpassword", "Mysuru", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleFarmer, u.Role, "role defaults to farmer")
	assert.NotEmpty(t, token)

	// The issued token must carry the id and role claims.
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.Hex(), claims["sub"])
	assert.Equal(t, model.RoleFarmer, claims["role"])

	_, _, err = svc.Login(context.Background(), "+919900112233", "wrongpassword")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	got, token, err := svc.Login(context.Background(), "+919900112233", "strongpassword")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestOfficerRegistrationNeedsSignupCode(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret", "officer-code", zap.NewNop())

	_, _, err := svc.Register(context.Background(), "KVK Officer", "+919900112244", "strongpassword", "", model.RoleOfficer, "wrong")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	u, _, err := svc.Register(context.Background(), "KVK Officer", "+919900112244", "strongpassword", "", model.RoleOfficer, "officer-code")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOfficer, u.Role)
}

func TestLoginUnknownPhone(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret", "", zap.NewNop())

	_, _, err := svc.Login(context.Background(), "+910000000000", "whatever")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err), "unknown phone is indistinguishable from bad password")
}
