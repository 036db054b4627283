package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
)

type stubProvider struct {
	session    *Session
	signInErr  error
	identity   *Identity
	userErr    error
	signOutErr error
	signedOut  string
}

func (s *stubProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return s.session, nil
}

func (s *stubProvider) User(ctx context.Context, accessToken string) (*Identity, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.identity, nil
}

func (s *stubProvider) SignOut(ctx context.Context, accessToken string) error {
	if s.signOutErr != nil {
		return s.signOutErr
	}
	s.signedOut = accessToken
	return nil
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected %s, got %s", code, typed.Code())
	}
}

func TestLoginReturnsProviderSession(t *testing.T) {
	want := &Session{AccessToken: "token", ExpiresAt: time.Now().Add(time.Hour)}
	svc, _ := NewService(&stubProvider{session: want})

	got, err := svc.Login(context.Background(), "admin@pid.org", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.AccessToken != "token" {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestLoginValidatesInput(t *testing.T) {
	svc, _ := NewService(&stubProvider{})

	_, err := svc.Login(context.Background(), "", "secret")
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Login(context.Background(), "admin@pid.org", "")
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestLoginBadCredentialsIsUnauthorized(t *testing.T) {
	svc, _ := NewService(&stubProvider{signInErr: ErrBadCredentials})
	_, err := svc.Login(context.Background(), "admin@pid.org", "wrong")
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginBackendFailureIsDependencyError(t *testing.T) {
	svc, _ := NewService(&stubProvider{signInErr: errors.New("gateway timeout")})
	_, err := svc.Login(context.Background(), "admin@pid.org", "secret")
	expectCode(t, err, pkgerrors.CodeDependency)
}

func TestCheckEmptyTokenIsUnauthorized(t *testing.T) {
	svc, _ := NewService(&stubProvider{})
	_, err := svc.Check(context.Background(), "")
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestCheckResolvesIdentity(t *testing.T) {
	svc, _ := NewService(&stubProvider{identity: &Identity{ID: "u1", Email: "admin@pid.org"}})
	identity, err := svc.Check(context.Background(), "opaque-token")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if identity.Email != "admin@pid.org" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestCheckRevokedSessionIsUnauthorized(t *testing.T) {
	svc, _ := NewService(&stubProvider{userErr: ErrNoSession})
	_, err := svc.Check(context.Background(), "opaque-token")
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestCheckBackendFailureIsDependencyError(t *testing.T) {
	svc, _ := NewService(&stubProvider{userErr: errors.New("connection refused")})
	_, err := svc.Check(context.Background(), "opaque-token")
	expectCode(t, err, pkgerrors.CodeDependency)
}

func TestLogoutSignsOutWithToken(t *testing.T) {
	provider := &stubProvider{}
	svc, _ := NewService(provider)

	if err := svc.Logout(context.Background(), "token-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if provider.signedOut != "token-1" {
		t.Fatalf("expected sign out of token-1, got %q", provider.signedOut)
	}
}

func TestLogoutFailureIsDependencyError(t *testing.T) {
	svc, _ := NewService(&stubProvider{signOutErr: errors.New("backend down")})
	err := svc.Logout(context.Background(), "token-1")
	expectCode(t, err, pkgerrors.CodeDependency)
}
