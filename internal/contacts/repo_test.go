package contacts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pid-digital/leads-backend/pkg/db/models"
)

func setupContactsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS contacts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  joined_whatsapp INTEGER NOT NULL DEFAULT 0
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestRepositoryInsertAndList(t *testing.T) {
	repo := NewRepository(setupContactsTestDB(t))
	ctx := context.Background()

	first := &models.Contact{ID: uuid.New(), Name: "Ana Silva", Phone: "11911112222", CreatedAt: time.Now().Add(-time.Hour)}
	second := &models.Contact{ID: uuid.New(), Name: "Bruno", Phone: "21933334444", CreatedAt: time.Now()}

	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Bruno", rows[0].Name, "listing should be newest first")
	assert.Equal(t, "Ana Silva", rows[1].Name)
	assert.False(t, rows[0].JoinedWhatsApp)
}

func TestRepositoryDelete(t *testing.T) {
	repo := NewRepository(setupContactsTestDB(t))
	ctx := context.Background()

	contact := &models.Contact{ID: uuid.New(), Name: "Ana Silva", Phone: "11911112222"}
	require.NoError(t, repo.Insert(ctx, contact))

	require.NoError(t, repo.Delete(ctx, contact.ID))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryDeleteMissingRow(t *testing.T) {
	repo := NewRepository(setupContactsTestDB(t))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
