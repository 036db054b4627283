package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/pid-digital/leads-backend/pkg/db/models"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
)

func TestFilenameCarriesCurrentDate(t *testing.T) {
	now := time.Date(2025, time.March, 7, 18, 5, 0, 0, time.UTC)
	if got := Filename(now); got != "contatos-pid-2025-03-07.pdf" {
		t.Fatalf("unexpected filename %s", got)
	}
}

func TestRenderRejectsEmptyView(t *testing.T) {
	_, err := Render(nil, time.Now())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	view := []models.Contact{
		{Name: "Ana Silva", Phone: "(11) 91111-2222", CreatedAt: time.Now(), JoinedWhatsApp: true},
		{Name: "Bruno", Phone: "(21) 93333-4444", CreatedAt: time.Now()},
	}

	out, err := Render(view, time.Now())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestRowsForMapsEveryContact(t *testing.T) {
	created := time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC)
	view := []models.Contact{
		{Name: "Ana Silva", Phone: "(11) 91111-2222", CreatedAt: created, JoinedWhatsApp: true},
		{Name: "Bruno", Phone: "(21) 93333-4444", CreatedAt: created},
	}

	rows := rowsFor(view)
	if len(rows) != len(view) {
		t.Fatalf("expected %d rows, got %d", len(view), len(rows))
	}
	if rows[0][3] != "Entrou no grupo" {
		t.Fatalf("unexpected status text %q", rows[0][3])
	}
	if rows[1][3] != "Aguardando entrada" {
		t.Fatalf("unexpected status text %q", rows[1][3])
	}
	if rows[0][2] != "02/01/2025 09:30" {
		t.Fatalf("unexpected date %q", rows[0][2])
	}
}

func TestRenderManyRowsSpansPagesWithoutError(t *testing.T) {
	view := make([]models.Contact, 120)
	for i := range view {
		view[i] = models.Contact{Name: "Contato", Phone: "(11) 90000-0000", CreatedAt: time.Now()}
	}
	out, err := Render(view, time.Now())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
}
