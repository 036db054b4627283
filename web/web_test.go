package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pid-digital/leads-backend/pkg/db/models"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, data); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}

func TestHomePageSuccessCard(t *testing.T) {
	page := render(t, "home.html", struct{ GroupLink string }{GroupLink: "https://chat.whatsapp.com/ABC123"})

	if !strings.Contains(page, "https://chat.whatsapp.com/ABC123") {
		t.Fatal("expected the group link in the success card")
	}
	if !strings.Contains(page, "Fazer novo cadastro") {
		t.Fatal("expected a reset control to start a new submission")
	}
	if !strings.Contains(page, "Quero participar") {
		t.Fatal("expected the submit control")
	}
}

func TestAdminPageRendersContacts(t *testing.T) {
	created := time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC)
	page := render(t, "admin.html", struct {
		UserEmail string
		Query     string
		Contacts  []models.Contact
	}{
		UserEmail: "admin@pid.org",
		Contacts: []models.Contact{
			{ID: uuid.New(), Name: "Ana Silva", Phone: "11911112222", CreatedAt: created, JoinedWhatsApp: true},
		},
	})

	if !strings.Contains(page, "(11) 91111-2222") {
		t.Fatal("expected the masked phone")
	}
	if !strings.Contains(page, "02/01/2025 09:30") {
		t.Fatal("expected the formatted creation date")
	}
	if !strings.Contains(page, "Entrou no grupo") {
		t.Fatal("expected the joined status text")
	}
	if !strings.Contains(page, "admin@pid.org") {
		t.Fatal("expected the signed-in admin email")
	}
}

func TestAdminPageEmptyListing(t *testing.T) {
	page := render(t, "admin.html", struct {
		UserEmail string
		Query     string
		Contacts  []models.Contact
	}{UserEmail: "admin@pid.org"})

	if !strings.Contains(page, "Nenhum contato encontrado") {
		t.Fatal("expected the empty listing notice")
	}
}
