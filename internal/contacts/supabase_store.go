package contacts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pid-digital/leads-backend/pkg/db/models"
	"github.com/pid-digital/leads-backend/pkg/supabase"
)

// SupabaseStore keeps contacts in the hosted backend's table, reached over
// PostgREST. This is the default storage driver.
type SupabaseStore struct {
	client *supabase.Client
	table  string
}

// NewSupabaseStore wraps the backend client for the configured table.
func NewSupabaseStore(client *supabase.Client, table string) *SupabaseStore {
	return &SupabaseStore{client: client, table: table}
}

// insertPayload omits created_at so the store assigns it.
type insertPayload struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	JoinedWhatsApp bool      `json:"joined_whatsapp"`
}

func (s *SupabaseStore) Insert(ctx context.Context, contact *models.Contact) error {
	return s.client.Insert(ctx, s.table, insertPayload{
		ID:             contact.ID,
		Name:           contact.Name,
		Phone:          contact.Phone,
		JoinedWhatsApp: contact.JoinedWhatsApp,
	})
}

func (s *SupabaseStore) List(ctx context.Context) ([]models.Contact, error) {
	var rows []models.Contact
	if err := s.client.Select(ctx, s.table, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.client.Delete(ctx, s.table, id.String())
	if errors.Is(err, supabase.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
