// Package export renders the admin console's filtered contact view as a
// paginated PDF report.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pid-digital/leads-backend/internal/contacts"
	"github.com/pid-digital/leads-backend/pkg/db/models"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
)

const (
	reportTitle    = "PID - Programa de Inclusão Digital"
	reportSubtitle = "Relatório de Contatos"
)

var columnWidths = [4]float64{70, 40, 40, 40}

// Filename returns the date-stamped download name for a report generated now.
func Filename(now time.Time) string {
	return fmt.Sprintf("contatos-pid-%s.pdf", now.Format("2006-01-02"))
}

// Render produces the PDF for the given (already filtered) view. An empty
// view is a validation error: the console disables the control, and the
// server refuses it all the same.
func Render(view []models.Contact, generatedAt time.Time) ([]byte, error) {
	if len(view) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no contacts to export")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(reportSubtitle), false)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		footer := fmt.Sprintf("Página %d de {nb} - %s", pdf.PageNo(), reportTitle)
		pdf.CellFormat(0, 10, tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 57, 203)
	pdf.CellFormat(0, 10, tr(reportTitle), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 7, tr(reportSubtitle), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	generated := fmt.Sprintf("Gerado em: %s", contacts.FormatDateTime(generatedAt))
	pdf.CellFormat(0, 6, tr(generated), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeHeaderRow(pdf, tr)
	for i, row := range rowsFor(view) {
		writeBodyRow(pdf, tr, row, i%2 == 1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render pdf")
	}
	return buf.Bytes(), nil
}

// rowsFor maps contacts onto the report's table cells.
func rowsFor(view []models.Contact) [][4]string {
	rows := make([][4]string, len(view))
	for i, contact := range view {
		rows[i] = [4]string{
			contact.Name,
			contact.Phone,
			contacts.FormatDateTime(contact.CreatedAt),
			contacts.StatusText(contact.JoinedWhatsApp),
		}
	}
	return rows
}

func writeHeaderRow(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0, 57, 203)
	pdf.SetTextColor(255, 255, 255)
	headers := [4]string{"Nome", "Telefone", "Data de Cadastro", "Status"}
	for i, header := range headers {
		pdf.CellFormat(columnWidths[i], 8, tr(header), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeBodyRow(pdf *gofpdf.Fpdf, tr func(string) string, row [4]string, shaded bool) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(240, 245, 255)
	for i, cell := range row {
		pdf.CellFormat(columnWidths[i], 7, tr(cell), "1", 0, "L", shaded, 0, "")
	}
	pdf.Ln(-1)
}
