package auth

import (
	"context"
	"errors"

	"github.com/pid-digital/leads-backend/pkg/supabase"
)

// SupabaseProvider adapts the backend client to the Provider surface.
type SupabaseProvider struct {
	client *supabase.Client
}

// NewSupabaseProvider wraps an established backend client.
func NewSupabaseProvider(client *supabase.Client) *SupabaseProvider {
	return &SupabaseProvider{client: client}
}

func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	session, err := p.client.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, supabase.ErrInvalidCredentials) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	return &Session{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

func (p *SupabaseProvider) User(ctx context.Context, accessToken string) (*Identity, error) {
	user, err := p.client.User(ctx, accessToken)
	if err != nil {
		if errors.Is(err, supabase.ErrSessionInvalid) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}

func (p *SupabaseProvider) SignOut(ctx context.Context, accessToken string) error {
	return p.client.SignOut(ctx, accessToken)
}
