package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pid-digital/leads-backend/internal/contacts"
	"github.com/pid-digital/leads-backend/pkg/db/models"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
)

type stubContactService struct {
	rows       []models.Contact
	submitted  *contacts.SubmitInput
	deletedID  uuid.UUID
	listErr    error
	deleteErr  error
	refreshed  bool
	listCalled bool
}

func (s *stubContactService) Submit(ctx context.Context, input contacts.SubmitInput) (*models.Contact, error) {
	s.submitted = &input
	return &models.Contact{ID: uuid.New(), Name: input.Name, Phone: input.Phone, CreatedAt: time.Now()}, nil
}

func (s *stubContactService) List(ctx context.Context) ([]models.Contact, error) {
	s.listCalled = true
	return s.rows, s.listErr
}

func (s *stubContactService) Refresh(ctx context.Context) ([]models.Contact, error) {
	s.refreshed = true
	return s.rows, s.listErr
}

func (s *stubContactService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return s.deleteErr
}

func TestContactsSubmitStoresDigitsOnly(t *testing.T) {
	svc := &stubContactService{}
	handler := ContactsSubmit(svc, nil)

	body := bytes.NewBufferString(`{"name":"Ana Silva","phone":"(11) 91111-2222"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.submitted == nil || svc.submitted.Phone != "11911112222" {
		t.Fatalf("expected digits-only phone, got %+v", svc.submitted)
	}
}

func TestContactsSubmitRejectsUnknownFields(t *testing.T) {
	handler := ContactsSubmit(&stubContactService{}, nil)

	body := bytes.NewBufferString(`{"name":"Ana","phone":"11911112222","joined_whatsapp":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestContactsSubmitRejectsMissingFields(t *testing.T) {
	handler := ContactsSubmit(&stubContactService{}, nil)

	body := bytes.NewBufferString(`{"name":"Ana Silva"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestContactsListFiltersByQuery(t *testing.T) {
	svc := &stubContactService{rows: []models.Contact{
		{ID: uuid.New(), Name: "Ana Silva", Phone: "11911112222"},
		{ID: uuid.New(), Name: "Bruno", Phone: "21933334444"},
	}}
	handler := ContactsList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts?q=ana", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []models.Contact `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Ana Silva" {
		t.Fatalf("unexpected view %+v", envelope.Data)
	}
}

func TestContactsListRefreshBypassesCache(t *testing.T) {
	svc := &stubContactService{}
	handler := ContactsList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts?refresh=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !svc.refreshed || svc.listCalled {
		t.Fatal("expected a refresh read, not a cached one")
	}
}

func TestContactsDeleteParsesID(t *testing.T) {
	svc := &stubContactService{}
	id := uuid.New()

	r := chi.NewRouter()
	r.Delete("/api/v1/contacts/{id}", ContactsDelete(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/"+id.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.deletedID != id {
		t.Fatalf("expected delete of %s, got %s", id, svc.deletedID)
	}
}

func TestContactsDeleteRejectsBadID(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/v1/contacts/{id}", ContactsDelete(&stubContactService{}, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestContactsDeleteNotFound(t *testing.T) {
	svc := &stubContactService{deleteErr: pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")}

	r := chi.NewRouter()
	r.Delete("/api/v1/contacts/{id}", ContactsDelete(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestContactsExportStreamsPDF(t *testing.T) {
	svc := &stubContactService{rows: []models.Contact{
		{ID: uuid.New(), Name: "Ana Silva", Phone: "11911112222", CreatedAt: time.Now()},
	}}
	handler := ContactsExport(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/export", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf, got %s", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestContactsExportEmptyViewIsValidationError(t *testing.T) {
	handler := ContactsExport(&stubContactService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/export", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestContactsExportFilteredToNothingIsRejected(t *testing.T) {
	svc := &stubContactService{rows: []models.Contact{
		{ID: uuid.New(), Name: "Ana Silva", Phone: "11911112222", CreatedAt: time.Now()},
	}}
	handler := ContactsExport(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/export?q=zzz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
