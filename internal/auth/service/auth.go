package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	autherrors "sportsclub/internal/auth/errors"
	"sportsclub/internal/auth/repository"
	"sportsclub/pkg/config"
	apperrors "sportsclub/pkg/errors"
	"sportsclub/pkg/model"

	"github.com/go-playground/validator/v10"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "sportsclub"

// SessionListener is told about every sign-in and sign-out. A nil session
// means the admin signed out.
type SessionListener func(session *model.Session)

type AuthService interface {
	SignIn(ctx context.Context, creds *model.Credentials) (*model.SessionToken, error)
	SignOut(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (*model.Session, error)
	OnSessionChange(listener SessionListener) (unsubscribe func())
}

type claims struct {
	jwt.RegisteredClaims
}

type authService struct {
	admins   repository.AdminRepository
	sessions repository.SessionStore
	validate *validator.Validate
	secret   []byte
	cfg      *config.Config
	now      func() time.Time

	mu        sync.RWMutex
	listeners map[int]SessionListener
	nextID    int
}

func NewAuthService(admins repository.AdminRepository, sessions repository.SessionStore, cfg *config.Config) AuthService {
	return &authService{
		admins:    admins,
		sessions:  sessions,
		validate:  validator.New(),
		secret:    []byte(cfg.JWTSecret),
		cfg:       cfg,
		now:       time.Now,
		listeners: map[int]SessionListener{},
	}
}

// HashPassword is used when seeding admins.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy spends the same bcrypt work as a real check so an unknown
// email cannot be told apart by timing.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("sportsclub-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// NormalizeEmail is the form admin emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredentials() error {
	return apperrors.Unauthorized("invalid credentials")
}

func (s *authService) SignIn(ctx context.Context, creds *model.Credentials) (*model.SessionToken, error) {
	creds.Email = NormalizeEmail(creds.Email)
	if err := s.validate.Struct(creds); err != nil {
		return nil, invalidCredentials()
	}

	admin, err := s.admins.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrAdminNotFound) {
			compareDummy(creds.Password)
			s.cfg.Log.Warn("Sign-in failed", "email", creds.Email, "reason", "unknown admin")
			return nil, invalidCredentials()
		}
		s.cfg.Log.Error("Failed to look up admin", "email", creds.Email, "error", err)
		return nil, apperrors.Store("Failed to sign in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(creds.Password)); err != nil {
		s.cfg.Log.Warn("Sign-in failed", "email", creds.Email, "reason", "wrong password")
		return nil, invalidCredentials()
	}

	now := s.now().UTC().Truncate(time.Second)
	session := &model.Session{
		ID:         uuid.NewString(),
		AdminEmail: admin.Email,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.cfg.SessionTTL),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.AdminEmail,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue session token", err)
	}

	if err := s.sessions.Save(ctx, session, s.cfg.SessionTTL); err != nil {
		s.cfg.Log.Error("Failed to store session", "session_id", session.ID, "error", err)
		return nil, apperrors.Store("Failed to sign in", err)
	}

	s.cfg.Log.Info("Admin signed in", "email", session.AdminEmail, "session_id", session.ID)
	s.notify(session)

	return &model.SessionToken{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// SignOut ends a session. Ending one that is already gone is not an error.
func (s *authService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.cfg.Log.Error("Failed to delete session", "session_id", sessionID, "error", err)
		return apperrors.Store("Failed to sign out", err)
	}

	s.cfg.Log.Info("Admin signed out", "session_id", sessionID)
	s.notify(nil)
	return nil
}

// Authenticate accepts a token only while its session is still stored.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, apperrors.Unauthorized("missing session token")
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || c.ID == "" {
		return nil, apperrors.Unauthorized("invalid or expired session")
	}

	session, err := s.sessions.Get(ctx, c.ID)
	if err != nil {
		if errors.Is(err, autherrors.ErrSessionNotFound) {
			return nil, apperrors.Unauthorized("invalid or expired session")
		}
		s.cfg.Log.Error("Failed to read session", "session_id", c.ID, "error", err)
		return nil, apperrors.Store("Failed to verify session", err)
	}
	return session, nil
}

func (s *authService) OnSessionChange(listener SessionListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *authService) notify(session *model.Session) {
	s.mu.RLock()
	listeners := make([]SessionListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l(session)
	}
}
