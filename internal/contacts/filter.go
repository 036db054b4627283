package contacts

import (
	"strings"
	"time"

	"github.com/pid-digital/leads-backend/pkg/db/models"
)

// Filter derives the console's view: case-insensitive substring match on
// the name OR a raw substring match on the phone. An empty query returns
// the collection unchanged. Pure function, recomputed on demand.
func Filter(contacts []models.Contact, query string) []models.Contact {
	if query == "" {
		return contacts
	}
	lowered := strings.ToLower(query)

	filtered := make([]models.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if strings.Contains(strings.ToLower(contact.Name), lowered) || strings.Contains(contact.Phone, query) {
			filtered = append(filtered, contact)
		}
	}
	return filtered
}

// StatusText renders the WhatsApp membership flag the way the console and
// the PDF report show it.
func StatusText(joined bool) string {
	if joined {
		return "Entrou no grupo"
	}
	return "Aguardando entrada"
}

// FormatDateTime renders timestamps as dd/mm/yyyy hh:mm (pt-BR, 24h).
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
