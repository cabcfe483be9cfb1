package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Octaviomaldonado/GestorClientes/internal/config"
	"github.com/Octaviomaldonado/GestorClientes/internal/db"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dbx, err := db.NewSQLiteConnection(":memory:", db.SQLiteOpts{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(dbx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = dbx.Close() })

	cfg := config.Config{
		Validation: config.ValidationConfig{DefaultRegion: "US", CheckMX: false},
	}
	return NewServer(cfg, dbx)
}

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func createAna(t *testing.T, srv *Server) int64 {
	t.Helper()
	rr := do(t, srv, http.MethodPost, "/v1/customers", map[string]any{
		"first_name": "Ana",
		"last_name":  "Gómez",
		"phone":      "+14155552671",
		"email":      "ANA@Example.com",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	return int64(decode(t, rr)["id"].(float64))
}

func TestCreateCustomerNormalizes(t *testing.T) {
	srv := newTestServer(t)
	id := createAna(t, srv)

	rr := do(t, srv, http.MethodGet, "/v1/customers/by-email/ana@example.com", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get by email: %d %s", rr.Code, rr.Body.String())
	}
	got := decode(t, rr)
	if got["email"] != "ana@example.com" {
		t.Errorf("stored email: %v", got["email"])
	}
	if got["phone"] != "+14155552671" {
		t.Errorf("stored phone: %v", got["phone"])
	}
	if int64(got["id"].(float64)) != id {
		t.Errorf("id mismatch")
	}
}

func TestCreateCustomerDuplicate(t *testing.T) {
	srv := newTestServer(t)
	createAna(t, srv)

	rr := do(t, srv, http.MethodPost, "/v1/customers", map[string]any{
		"first_name": "Ana",
		"last_name":  "Gómez",
		"phone":      "+14155552671",
		"email":      "Ana@EXAMPLE.COM", // same address, different case
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateCustomerInvalidInput(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/v1/customers", map[string]any{
		"first_name": "X", "last_name": "Y", "phone": "+14155552671", "email": "not-an-email",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad email: want 400, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodPost, "/v1/customers", map[string]any{
		"first_name": "X", "last_name": "Y", "phone": "12345", "email": "x@example.com",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad phone: want 400, got %d", rr.Code)
	}
}

func TestPatchCustomerNotesOnly(t *testing.T) {
	srv := newTestServer(t)
	id := createAna(t, srv)

	rr := do(t, srv, http.MethodPatch, "/v1/customers/1", map[string]any{"notes": "VIP"})
	if rr.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", rr.Code, rr.Body.String())
	}
	if decode(t, rr)["updated"] != true {
		t.Fatal("patch reported no update")
	}

	rr = do(t, srv, http.MethodGet, "/v1/customers/1", nil)
	got := decode(t, rr)
	if got["notes"] != "VIP" || got["first_name"] != "Ana" || got["email"] != "ana@example.com" {
		t.Errorf("after patch: %v", got)
	}
	_ = id
}

func TestToggleCustomer(t *testing.T) {
	srv := newTestServer(t)
	createAna(t, srv)

	rr := do(t, srv, http.MethodPost, "/v1/customers/1/toggle", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", rr.Code, rr.Body.String())
	}
	if decode(t, rr)["active"] != false {
		t.Error("toggle should deactivate")
	}

	rr = do(t, srv, http.MethodGet, "/v1/customers?active=inactive", nil)
	if int(decode(t, rr)["count"].(float64)) != 1 {
		t.Error("inactive listing should contain the toggled customer")
	}
}

func TestCustomerNotFound(t *testing.T) {
	srv := newTestServer(t)
	if rr := do(t, srv, http.MethodGet, "/v1/customers/42", nil); rr.Code != http.StatusNotFound {
		t.Errorf("get: want 404, got %d", rr.Code)
	}
	if rr := do(t, srv, http.MethodDelete, "/v1/customers/42", nil); rr.Code != http.StatusNotFound {
		t.Errorf("delete: want 404, got %d", rr.Code)
	}
}

func TestAppointmentInvalidDate(t *testing.T) {
	srv := newTestServer(t)
	rr := do(t, srv, http.MethodPost, "/v1/appointments", map[string]any{
		"date": "2024-02-30", "time": "10:00", "reason": "control",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	srv := newTestServer(t)
	id := createAna(t, srv)

	rr := do(t, srv, http.MethodPost, "/v1/appointments", map[string]any{
		"customer_id": id, "date": "2030-05-05", "time": "15:30", "reason": "control",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	if decode(t, rr)["start"] != "2030-05-05 15:30" {
		t.Errorf("combined start: %v", decode(t, rr)["start"])
	}

	rr = do(t, srv, http.MethodGet, "/v1/appointments/1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: %d", rr.Code)
	}
	got := decode(t, rr)
	// sql.Null* marshals as {String, Valid}
	joined, ok := got["customer_email"].(map[string]any)
	if !ok || joined["String"] != "ana@example.com" || joined["Valid"] != true {
		t.Errorf("joined email payload: %v", got["customer_email"])
	}

	// clear the customer reference with an explicit null
	rr = do(t, srv, http.MethodPatch, "/v1/appointments/1", map[string]any{"customer_id": nil})
	if rr.Code != http.StatusOK || decode(t, rr)["updated"] != true {
		t.Fatalf("clear customer: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, srv, http.MethodGet, "/v1/appointments?when=future", nil)
	if int(decode(t, rr)["count"].(float64)) != 1 {
		t.Error("future listing should contain the turno")
	}

	rr = do(t, srv, http.MethodDelete, "/v1/appointments/1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: %d", rr.Code)
	}
}

func TestNotesEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := createAna(t, srv)

	rr := do(t, srv, http.MethodPost, "/v1/notes", map[string]any{"customer_id": id, "content": "llamar lunes"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create note: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, srv, http.MethodPost, "/v1/notes", map[string]any{"customer_id": 999, "content": "huérfana"})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("dangling customer: want 422, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodGet, "/v1/notes?customer_id=1", nil)
	if int(decode(t, rr)["count"].(float64)) != 1 {
		t.Error("filtered note listing")
	}
}

func TestSettingsAndMail(t *testing.T) {
	srv := newTestServer(t)
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASS", "")

	rr := do(t, srv, http.MethodPut, "/v1/settings", map[string]string{
		"SMTP_HOST": "smtp.example.com",
		"SMTP_PORT": "587",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("save settings: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, srv, http.MethodGet, "/v1/settings", nil)
	if decode(t, rr)["SMTP_HOST"] != "smtp.example.com" {
		t.Error("settings not persisted")
	}

	// user/password still missing: send must fail before any network I/O
	rr = do(t, srv, http.MethodPost, "/v1/mail/send", map[string]string{
		"to": "ana@example.com", "subject": "hola", "body": "cuerpo",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("incomplete config: want 422, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)
	createAna(t, srv)

	rr := do(t, srv, http.MethodGet, "/v1/stats", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("stats: %d", rr.Code)
	}
	got := decode(t, rr)
	if int(got["customers"].(float64)) != 1 || int(got["active"].(float64)) != 1 {
		t.Errorf("stats payload: %v", got)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rr := do(t, srv, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("healthz: %d", rr.Code)
	}
}
