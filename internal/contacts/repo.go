package contacts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pid-digital/leads-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists contacts in a directly owned database table. It
// satisfies Store for the postgres/sqlite storage drivers.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a contact repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates one contact row.
func (r *Repository) Insert(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// List returns every contact, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Contact, error) {
	var rows []models.Contact
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the contact with the given id; ErrNotFound when absent.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
