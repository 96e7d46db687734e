// Package auth manages the single local user session and the on-device
// account registry.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/storage"
)

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"

	defaultAvatar = "/placeholder.svg?height=100&width=100"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrMissingFields      = errors.New("please fill in all fields")
)

// hashCost is lowered by tests.
var hashCost = bcrypt.DefaultCost

var demoUser = model.User{
	ID:     "1",
	Name:   "Demo User",
	Email:  DemoEmail,
	Avatar: defaultAvatar,
}

// account is a registry entry. Only the bcrypt hash is stored.
type account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Avatar       string `json:"avatar,omitempty"`
}

func (a account) user() model.User {
	avatar := a.Avatar
	if avatar == "" {
		avatar = defaultAvatar
	}
	return model.User{ID: a.ID, Name: a.Name, Email: a.Email, Avatar: avatar}
}

// Service authenticates against the demo account and the local registry.
type Service struct {
	mu      sync.Mutex
	backend storage.Backend
	log     *zap.Logger
	current *model.User
}

// NewService restores a remembered session from backend. A corrupt
// session entry is discarded.
func NewService(backend storage.Backend, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{backend: backend, log: log}

	var u model.User
	_, err := storage.Load(backend, storage.KeyUser, &u)
	switch {
	case err == nil && u.ID != "":
		s.current = &u
	case errors.Is(err, storage.ErrNotFound):
	default:
		log.Warn("discarding stored session", zap.Error(err))
		_ = backend.Delete(storage.KeyUser)
	}
	return s
}

// Current returns the logged-in user, if any.
func (s *Service) Current() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.User{}, false
	}
	return *s.current, true
}

// Login authenticates email and password. With remember the session
// survives restarts; otherwise it lives in memory only.
func (s *Service) Login(email, password string, remember bool) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var u model.User
	if strings.EqualFold(email, DemoEmail) && password == DemoPassword {
		u = demoUser
	} else {
		accounts, err := s.accounts()
		if err != nil {
			return model.User{}, err
		}
		acc, ok := find(accounts, email)
		if !ok || bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
			return model.User{}, ErrInvalidCredentials
		}
		u = acc.user()
	}

	s.current = &u
	if remember {
		if err := storage.Save(s.backend, storage.KeyUser, u); err != nil {
			s.log.Error("failed to remember session", zap.Error(err))
		}
	} else if err := s.backend.Delete(storage.KeyUser); err != nil {
		s.log.Error("failed to forget remembered session", zap.Error(err))
	}
	s.log.Info("user logged in", zap.String("user_id", u.ID))
	return u, nil
}

// Signup registers a new account and logs it in. Signup sessions are
// always remembered.
func (s *Service) Signup(name, email, password string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return model.User{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accounts()
	if err != nil {
		return model.User{}, err
	}
	if _, taken := find(accounts, email); taken || strings.EqualFold(email, DemoEmail) {
		return model.User{}, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	acc := account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       defaultAvatar,
	}
	accounts = append(accounts, acc)
	if err := storage.Save(s.backend, storage.KeyUsers, accounts); err != nil {
		return model.User{}, err
	}

	u := acc.user()
	s.current = &u
	if err := storage.Save(s.backend, storage.KeyUser, u); err != nil {
		s.log.Error("failed to remember session", zap.Error(err))
	}
	s.log.Info("user signed up", zap.String("user_id", u.ID))
	return u, nil
}

// Logout clears the session, remembered or not.
func (s *Service) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err := s.backend.Delete(storage.KeyUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Service) accounts() ([]account, error) {
	var accounts []account
	if _, err := storage.Load(s.backend, storage.KeyUsers, &accounts); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read account registry: %w", err)
	}
	return accounts, nil
}

func find(accounts []account, email string) (account, bool) {
	for _, a := range accounts {
		if strings.EqualFold(a.Email, email) {
			return a, true
		}
	}
	return account{}, false
}
