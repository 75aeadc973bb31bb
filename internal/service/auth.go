package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/primetrade/task-api/internal/model"
	"github.com/primetrade/task-api/internal/repo"
	"github.com/primetrade/task-api/internal/token"
)

type AuthService struct {
	users  repo.UserRepository
	tokens *token.Manager
}

func NewAuthService(users repo.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AccountPublic, string, error) {
	if err := validateRegister(req); err != nil {
		return model.AccountPublic{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.AccountPublic{}, "", err
	}

	acc, err := s.users.Create(ctx, model.Account{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	})
	if errors.Is(err, repo.ErrorConflict) {
		return model.AccountPublic{}, "", conflictError("User already exists")
	}
	if err != nil {
		return model.AccountPublic{}, "", err
	}

	tok, err := s.tokens.Issue(acc.ID)
	if err != nil {
		return model.AccountPublic{}, "", err
	}
	return acc.Public(), tok, nil
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AccountPublic, string, error) {
	if err := validateLogin(req); err != nil {
		return model.AccountPublic{}, "", err
	}

	// Неизвестный email и неверный пароль дают одно и то же сообщение,
	// чтобы по ответу нельзя было перебирать зарегистрированные адреса
	acc, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repo.ErrorNotFound) {
		return model.AccountPublic{}, "", authenticationError("Invalid credentials")
	}
	if err != nil {
		return model.AccountPublic{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)) != nil {
		return model.AccountPublic{}, "", authenticationError("Invalid credentials")
	}

	tok, err := s.tokens.Issue(acc.ID)
	if err != nil {
		return model.AccountPublic{}, "", err
	}
	return acc.Public(), tok, nil
}

// Authenticate резолвит bearer-токен в учетную запись. Роль читается
// свежей из БД, а не из токена - она могла измениться после выпуска.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (model.Account, error) {
	id, err := s.tokens.Verify(bearer)
	if err != nil {
		return model.Account{}, authenticationError("Not authorized, token failed")
	}

	acc, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.Account{}, authenticationError("Not authorized, token failed")
	}
	return acc, err
}

func validateRegister(req model.RegisterRequest) error {
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < 2 {
		return validationError("Name must be at least 2 characters long")
	}
	if utf8.RuneCountInString(name) > 50 {
		return validationError("Name must be at most 50 characters long")
	}
	if !validEmail(req.Email) {
		return validationError("Valid email is required")
	}
	if len(req.Password) < 6 {
		return validationError("Password must be at least 6 characters long")
	}
	return nil
}

func validateLogin(req model.LoginRequest) error {
	if !validEmail(req.Email) {
		return validationError("Valid email is required")
	}
	if req.Password == "" {
		return validationError("Password is required")
	}
	return nil
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	// Только голый адрес, без display name
	return err == nil && addr.Address == email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
