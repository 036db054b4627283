package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pid-digital/leads-backend/api/responses"
	"github.com/pid-digital/leads-backend/api/validators"
	"github.com/pid-digital/leads-backend/internal/contacts"
	"github.com/pid-digital/leads-backend/internal/export"
	"github.com/pid-digital/leads-backend/pkg/db/models"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
	"github.com/pid-digital/leads-backend/pkg/logger"
	"github.com/pid-digital/leads-backend/pkg/phone"
)

type submitContactRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Phone string `json:"phone" validate:"required,min=8,max=20"`
}

// ContactsSubmit takes a public form submission. The phone is stored as
// bare digits; presentation layers re-apply the mask.
func ContactsSubmit(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var body submitContactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.Submit(r.Context(), contacts.SubmitInput{
			Name:  body.Name,
			Phone: phone.Digits(body.Phone),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, contact)
	}
}

// ContactsList answers the console's listing. q filters server-side the
// same way the page does; refresh=1 bypasses the cache.
func ContactsList(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		rows, err := listFor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, contacts.Filter(rows, r.URL.Query().Get("q")))
	}
}

func ContactsDelete(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact id"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"deleted": id.String()})
	}
}

// ContactsExport streams the PDF report of the current filtered view.
func ContactsExport(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		rows, err := listFor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view := contacts.Filter(rows, r.URL.Query().Get("q"))
		for i := range view {
			view[i].Phone = phone.Format(view[i].Phone)
		}

		now := time.Now()
		pdf, err := export.Render(view, now)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(now)))
		if _, err := w.Write(pdf); err != nil && logg != nil {
			logg.Error(r.Context(), "export.write_failed", err)
		}
	}
}

// listFor reads the listing, past the cache when the request asks for a
// refresh.
func listFor(r *http.Request, svc contacts.Service) ([]models.Contact, error) {
	if r.URL.Query().Get("refresh") == "1" {
		return svc.Refresh(r.Context())
	}
	return svc.List(r.Context())
}
