package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agrisathi/internal/apperr"
	"agrisathi/model"
)

// UserStore is implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (model.User, error)
	GetByPhone(ctx context.Context, phone string) (model.User, error)
}

type AuthService struct {
	users      UserStore
	secret     []byte
	signupCode string
	tokenTTL   time.Duration
	log        *zap.Logger
}

func NewAuthService(users UserStore, secret, signupCode string, log *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		secret:     []byte(secret),
		signupCode: signupCode,
		tokenTTL:   72 * time.Hour,
		log:        log,
	}
}

// Register creates an account and returns a signed token. Officer accounts
// require the signup code handed out by the admin team.
func (s *AuthService) Register(ctx context.Context, name, phone, password, district, role, signupCode string) (model.User, string, error) {
	if role == "" {
		role = model.RoleFarmer
	}
	if role != model.RoleFarmer {
		if s.signupCode == "" || signupCode != s.signupCode {
			return model.User{}, "", apperr.Forbidden("invalid signup code for role %s", role)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", apperr.Validation("password cannot be hashed: %v", err)
	}

	u, err := s.users.Create(ctx, model.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
		District:     district,
	})
	if err != nil {
		return model.User{}, "", err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return model.User{}, "", err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	return u, token, nil
}

// Login verifies credentials and returns a signed token. Unknown phone and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, phone, password string) (model.User, string, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return model.User{}, "", apperr.Forbidden("invalid phone or password")
		}
		return model.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return model.User{}, "", apperr.Forbidden("invalid phone or password")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return model.User{}, "", err
	}
	return u, token, nil
}

func (s *AuthService) issueToken(u model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID.Hex(),
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperr.Storage(err)
	}
	return signed, nil
}
