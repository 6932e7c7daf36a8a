package auth

import (
	"context"
	"strconv"
	"strings"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/hash"
	"github.com/intania/shop-backend/internal/logging"
	"github.com/intania/shop-backend/internal/models"
	"github.com/intania/shop-backend/internal/service/token"
	"github.com/intania/shop-backend/internal/store"
)

const minPasswordLen = 6

type Service struct {
	Users  store.UserStore
	Tokens *token.Service
}

func New(users store.UserStore, tokens *token.Service) *Service {
	return &Service{Users: users, Tokens: tokens}
}

type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           *string
}

// PublicUser is the user as returned to clients, without the password hash.
type PublicUser struct {
	ID       int64       `json:"id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

type RegisterResult struct {
	User    PublicUser `json:"user"`
	Message string     `json:"message"`
}

type LoginResult struct {
	User    PublicUser `json:"user"`
	Token   string     `json:"token"`
	Message string     `json:"message"`
}

func publicUser(u *models.User) PublicUser {
	return PublicUser{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if strings.TrimSpace(input.FullName) == "" {
		return nil, apperr.Validation("full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, apperr.Validation("email is required")
	}
	if len(input.Password) < minPasswordLen {
		return nil, apperr.Validation("password must be at least 6 characters")
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperr.Validation("passwords do not match")
	}

	// Check-then-insert; the unique index on email backstops concurrent
	// registrations with the same address.
	if _, err := s.Users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.AlreadyExists("user with this email already exists")
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		l.Error("register_failed", "reason", "email check failed", "error", err)
		return nil, err
	}

	pwHash, err := hash.HashPassword(input.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, apperr.Internal("failed to hash password")
	}

	user := &models.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: pwHash,
		Phone:        input.Phone,
		Role:         models.RoleUser,
	}

	created, err := s.Users.Create(ctx, user)
	if err != nil {
		l.Error("register_failed", "reason", "insert failed", "error", err)
		return nil, err
	}

	l.Info("register_success", "user_id", created.ID)
	return &RegisterResult{
		User:    publicUser(created),
		Message: "User registered successfully",
	}, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if strings.TrimSpace(email) == "" {
		return nil, apperr.Validation("email is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperr.Validation("password is required")
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, apperr.InvalidCredentials("invalid email or password")
		}
		l.Error("login_failed", "reason", "email lookup failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "bad password", "user_id", user.ID)
		return nil, apperr.InvalidCredentials("invalid email or password")
	}

	tok, err := s.Tokens.Issue(strconv.FormatInt(user.ID, 10), user.Role)
	if err != nil {
		l.Error("login_failed", "reason", "token signing failed", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{
		User:    publicUser(user),
		Token:   tok,
		Message: "Login successful",
	}, nil
}
