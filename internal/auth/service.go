package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
)

// Session is what the application keeps of an authenticated admin: the
// opaque token and when it stops being valid.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Identity is the admin behind a validated session.
type Identity struct {
	ID    string
	Email string
}

// Provider is the external authentication backend.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	User(ctx context.Context, accessToken string) (*Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// ErrBadCredentials marks a provider-side login rejection.
var ErrBadCredentials = errors.New("auth: invalid credentials")

// ErrNoSession marks a token the provider no longer accepts.
var ErrNoSession = errors.New("auth: session invalid")

// Service wraps login, per-navigation session checks, and logout.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Check(ctx context.Context, accessToken string) (*Identity, error)
	Logout(ctx context.Context, accessToken string) error
}

type service struct {
	provider Provider
}

// NewService builds the auth service over the backend provider.
func NewService(provider Provider) (Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("auth provider required")
	}
	return &service{provider: provider}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign in")
	}
	return session, nil
}

// Check resolves the identity behind a token. Unauthorized means
// no-session; any other error means the check itself failed and callers
// must fail closed.
func (s *service) Check(ctx context.Context, accessToken string) (*Identity, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no session")
	}
	if tokenExpired(accessToken) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	identity, err := s.provider.User(ctx, accessToken)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session invalid")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
	}
	return identity, nil
}

func (s *service) Logout(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "no session")
	}
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign out")
	}
	return nil
}

// tokenExpired checks the JWT exp claim locally so obviously stale cookies
// skip the round trip. Tokens that don't parse are left for the provider
// to judge.
func tokenExpired(accessToken string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
