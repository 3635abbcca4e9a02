package account

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trendora/storefront/config"
	"github.com/trendora/storefront/internal/domain"
	"github.com/trendora/storefront/pkg/common"
)

const minPasswordLength = 8

var (
	ErrInvalidEmail   = errors.New("please enter a valid email")
	ErrWeakPassword   = errors.New("please enter a strong password")
	ErrEmailTaken     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user doesn't exist")
	ErrBadCredentials = errors.New("invalid credentials")
)

// Service registers and authenticates shoppers and the configured admin.
type Service struct {
	users  UserRepository
	tokens *TokenIssuer
	admin  config.AdminConfig
}

func NewService(users UserRepository, tokens *TokenIssuer, admin config.AdminConfig) *Service {
	return &Service{users: users, tokens: tokens, admin: admin}
}

// Register creates a user with a bcrypt password hash and an empty cart,
// returning a session token bound to the new id.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if !common.IsEmailValid(email) {
		return "", ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:        common.UUIDint64(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		CartData:  domain.NewCartData(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	zap.L().Info("user registered", zap.Int64("user_id", user.ID))
	return s.tokens.IssueUser(user.ID)
}

// Login verifies the password hash and returns a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return s.tokens.IssueUser(user.ID)
}

// AdminLogin compares against the configured credential pair and returns a
// token signed over the concatenation of email and password.
func (s *Service) AdminLogin(email, password string) (string, error) {
	if email != s.admin.Email || password != s.admin.Password {
		return "", ErrBadCredentials
	}
	return s.tokens.IssueAdmin(email + password)
}

// VerifyAdminToken reports whether a token matches the configured admin
// credential pair.
func (s *Service) VerifyAdminToken(token string) bool {
	account, err := s.tokens.ParseAdmin(token)
	if err != nil {
		return false
	}
	return account == s.admin.Email+s.admin.Password
}
