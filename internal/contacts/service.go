package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pid-digital/leads-backend/pkg/db/models"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
)

// ErrNotFound is returned by stores when a targeted row does not exist.
var ErrNotFound = errors.New("contact not found")

// Store is the narrow persistence surface; satisfied by the Supabase REST
// store and the direct-database repository.
type Store interface {
	Insert(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListingCache holds the most recent full listing so the console does not
// re-fetch on every page load. Writes to the store invalidate it.
type ListingCache interface {
	Get(ctx context.Context) ([]models.Contact, bool)
	Set(ctx context.Context, contacts []models.Contact)
	Invalidate(ctx context.Context)
}

// SubmitInput is one public form submission.
type SubmitInput struct {
	Name  string
	Phone string
}

// Service owns the contact lifecycle: submission, listing, deletion.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Refresh(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	store Store
	cache ListingCache
}

// NewService builds the contact service. The cache is optional.
func NewService(store Store, cache ListingCache) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("contact store required")
	}
	if cache == nil {
		cache = noopCache{}
	}
	return &service{store: store, cache: cache}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Contact, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	contact := &models.Contact{
		ID:             uuid.New(),
		Name:           name,
		Phone:          phone,
		JoinedWhatsApp: false,
	}

	if err := s.store.Insert(ctx, contact); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert contact")
	}

	s.cache.Invalidate(ctx)
	return contact, nil
}

func (s *service) List(ctx context.Context) ([]models.Contact, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contacts")
	}
	s.cache.Set(ctx, rows)
	return rows, nil
}

// Refresh always reads the store, replacing whatever was cached. On error
// nothing is replaced, so callers keep their previous snapshot.
func (s *service) Refresh(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh contacts")
	}
	s.cache.Set(ctx, rows)
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact id is required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact")
	}
	s.cache.Invalidate(ctx)
	return nil
}

type noopCache struct{}

func (noopCache) Get(context.Context) ([]models.Contact, bool) { return nil, false }
func (noopCache) Set(context.Context, []models.Contact)        {}
func (noopCache) Invalidate(context.Context)                   {}
