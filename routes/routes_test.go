package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PalmCare/cache"
	"PalmCare/config"
	"PalmCare/controllers"
	"PalmCare/database"
	"PalmCare/middlewares"
	"PalmCare/models"
	"PalmCare/services"
	"PalmCare/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	svc     *services.Services
	token   string
}

func newTestServer(t *testing.T, checks map[string]controllers.HealthCheck) *testServer {
	t.Helper()
	cfg := &config.AppConfig{
		Env:             "test",
		SimulatedDelay:  5 * time.Millisecond,
		PalmScanDelay:   time.Millisecond,
		InvoiceDueDays:  14,
		ConsultationFee: 50,
		SessionKey:      "0123456789abcdef0123456789abcdef",
		SessionTTL:      time.Hour,
		CacheTTL:        time.Minute,
	}
	db, err := database.InitDB(context.Background(), zerolog.Nop())
	require.NoError(t, err)
	svc := services.NewServices(db, cache.NewCache(nil), cfg, zerolog.Nop(), nil)
	return &testServer{t: t, handler: SetupRoutes(svc, cfg, zerolog.Nop(), checks), svc: svc}
}

func (s *testServer) do(method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set(utils.SessionHeader, s.token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	if out != nil {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body middlewares.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Code
}

func TestPatientVisit_EndToEnd(t *testing.T) {
	s := newTestServer(t, nil)

	var session models.Session
	w := s.do(http.MethodPost, "/api/session", map[string]string{"username": "dr.jane_doe"}, &session)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Jane Doe", session.DisplayName)
	assert.Equal(t, models.RoleDoctor, session.Role)
	require.NotEmpty(t, session.Token)
	s.token = session.Token

	var current models.Session
	w = s.do(http.MethodGet, "/api/session", nil, &current)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dr.jane_doe", current.Username)

	var registered struct {
		Patient models.Patient    `json:"patient"`
		Case    models.CaseRecord `json:"case"`
	}
	w = s.do(http.MethodPost, "/api/patients", map[string]interface{}{
		"name": "Amina Wanjiru", "age": 34, "gender": "Female",
	}, &registered)
	require.Equal(t, http.StatusCreated, w.Code)
	caseID := registered.Case.ID
	assert.Equal(t, models.StageTriage, registered.Case.Stage)

	var triage []models.CaseRecord
	s.do(http.MethodGet, "/api/triage?search=amina", nil, &triage)
	require.Len(t, triage, 1)

	w = s.do(http.MethodPost, "/api/triage/"+caseID+"/assess", map[string]interface{}{
		"vital_signs": map[string]interface{}{
			"blood_pressure": "120/80", "heart_rate": 72, "temperature": 36.6,
			"respiratory_rate": 16, "oxygen_saturation": 98,
		},
		"chief_complaint": "Headache",
		"priority":        "medium",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var consultation models.Consultation
	w = s.do(http.MethodPost, "/api/consultations/"+caseID+"/start", nil, &consultation)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Jane Doe", consultation.Physician, "physician falls back to the session")

	w = s.do(http.MethodPost, "/api/consultations/"+caseID+"/complete", map[string]interface{}{"diagnosis": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, middlewares.CodeValidation, errorCode(t, w))

	w = s.do(http.MethodPost, "/api/consultations/"+caseID+"/complete", map[string]interface{}{"diagnosis": "Tension headache"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var invoices []models.Invoice
	s.do(http.MethodGet, "/api/invoices", nil, &invoices)
	require.Len(t, invoices, 1)
	invoice := invoices[0]
	assert.Equal(t, 50.0, invoice.PatientResponsibility)

	var partial services.PaymentResult
	w = s.do(http.MethodPost, "/api/invoices/"+invoice.ID+"/pay", map[string]interface{}{"amount": 20, "method": "cash"}, &partial)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, partial.Full)
	assert.Equal(t, models.StatusPartial, partial.Invoice.Status)
	assert.Equal(t, 30.0, partial.Invoice.PatientResponsibility)

	var full services.PaymentResult
	w = s.do(http.MethodPost, "/api/invoices/"+invoice.ID+"/pay", map[string]interface{}{"amount": 40, "method": "card"}, &full)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, full.Full)
	assert.Equal(t, 10.0, full.Change)

	s.do(http.MethodGet, "/api/invoices", nil, &invoices)
	assert.Empty(t, invoices)

	var payments []models.Payment
	s.do(http.MethodGet, "/api/payments", nil, &payments)
	require.Len(t, payments, 1)
	assert.Equal(t, models.StatusPaid, payments[0].Status)

	var record models.CaseRecord
	s.do(http.MethodGet, "/api/queue/"+caseID, nil, &record)
	assert.Equal(t, models.StageDischarged, record.Stage)

	w = s.do(http.MethodPost, "/api/queue/"+caseID+"/cancel", nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, middlewares.CodeInvalidTransition, errorCode(t, w))
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/patients/P-9999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, middlewares.CodeNotFound, errorCode(t, w))

	w = s.do(http.MethodPost, "/api/queue/triage/call-next", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, middlewares.CodeNothingQueued, errorCode(t, w))

	w = s.do(http.MethodPost, "/api/queue/nowhere/call-next", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/session", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middlewares.CodeNoSession, errorCode(t, w))

	w = s.do(http.MethodPost, "/api/context/actions/save?duration_ms=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContextAction(t *testing.T) {
	s := newTestServer(t, nil)

	var result services.ActivityResult
	w := s.do(http.MethodPost, "/api/context/actions/save?duration_ms=30", nil, &result)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "save", result.Name)
	assert.GreaterOrEqual(t, result.Elapsed, 30*time.Millisecond)

	var snapshot services.ActivitySnapshot
	s.do(http.MethodGet, "/api/context", nil, &snapshot)
	assert.False(t, snapshot.Loading)
}

func TestSeededPages(t *testing.T) {
	s := newTestServer(t, nil)
	_, err := s.svc.Seed.Seed(context.Background())
	require.NoError(t, err)

	var queue []models.CaseRecord
	s.do(http.MethodGet, "/api/queue", nil, &queue)
	assert.Len(t, queue, 8)
	assert.Equal(t, models.PriorityHigh, queue[0].Priority)

	var critical []models.InventoryView
	s.do(http.MethodGet, "/api/inventory?status=Critical", nil, &critical)
	assert.Len(t, critical, 2)

	var nav struct {
		Items []struct {
			Name   string `json:"name"`
			Badge  int    `json:"badge"`
			Active bool   `json:"active"`
		} `json:"items"`
	}
	w := s.do(http.MethodGet, "/api/navigation?path=/triage/C-0001", nil, &nav)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, nav.Items, 8)
	assert.True(t, nav.Items[2].Active)
	assert.Equal(t, 2, nav.Items[2].Badge, "two patients wait at triage")

	var unread []models.Notification
	s.do(http.MethodGet, "/api/notifications?unread=true", nil, &unread)
	assert.NotEmpty(t, unread)

	var marked map[string]int
	s.do(http.MethodPost, "/api/notifications/read-all", nil, &marked)
	assert.Equal(t, 0, marked["unread"])

	var summary models.DashboardSummary
	w = s.do(http.MethodGet, "/api/dashboard", nil, &summary)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, summary.TotalPatients)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, map[string]controllers.HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})

	w := s.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")

	s = newTestServer(t, nil)
	w = s.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
