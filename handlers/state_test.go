package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orcaeletricista/models"
	"orcaeletricista/services"
	"orcaeletricista/testhelpers"
)

func TestHandleStateGet(t *testing.T) {
	app, d := newTestDeps(t, testhelpers.NewTestQuote("q1", "Ana"), testhelpers.NewTestQuote("q2", "Bruno"))
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()

	if err := HandleStateGet(d)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var got models.AppState
	decodeJSON(t, rec, &got)
	if len(got.Quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(got.Quotes))
	}
	if got.Quotes[0].ID != "q2" {
		t.Errorf("head quote = %s, want q2 (newest first)", got.Quotes[0].ID)
	}
	if got.ActiveTab != models.TabQuotes {
		t.Errorf("active tab = %q, want quotes after adding", got.ActiveTab)
	}
}

func TestHandleStateTab(t *testing.T) {
	app, d := newTestDeps(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantTab    models.Tab
	}{
		{"catalog", `{"tab":"catalog"}`, http.StatusOK, models.TabCatalog},
		{"new quote", `{"tab":"new-quote"}`, http.StatusOK, models.TabNewQuote},
		{"unknown tab keeps previous", `{"tab":"settings"}`, http.StatusBadRequest, models.TabNewQuote},
		{"malformed body", `{"tab":`, http.StatusBadRequest, models.TabNewQuote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, jsonRequest(http.MethodPost, "/api/state/tab", tt.body), rec)

			if err := HandleStateTab(d)(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := d.State.Snapshot().ActiveTab; got != tt.wantTab {
				t.Errorf("active tab = %q, want %q", got, tt.wantTab)
			}
		})
	}
}

func TestHandleStateTab_PersistsAcrossControllers(t *testing.T) {
	app, d := newTestDeps(t)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, jsonRequest(http.MethodPost, "/api/state/tab", `{"tab":"catalog"}`), rec)

	if err := HandleStateTab(d)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	reloaded, err := services.NewStateController(services.NewRecordStateStore(app, ""))
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := reloaded.Snapshot().ActiveTab; got != models.TabCatalog {
		t.Errorf("reloaded tab = %q, want catalog", got)
	}
}

func TestHandleDashboard(t *testing.T) {
	approved := testhelpers.NewTestQuote("q2", "Bruno")
	approved.Status = models.StatusApproved
	app, d := newTestDeps(t, testhelpers.NewTestQuote("q1", "Ana"), approved)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	if err := HandleDashboard(d)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var got services.DashboardSummary
	decodeJSON(t, rec, &got)
	if got.QuoteCount != 2 || got.PendingCount != 1 || got.ApprovedCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", got.QuoteCount, got.PendingCount, got.ApprovedCount)
	}
	if !got.TotalValue.Equal(dec("255")) {
		t.Errorf("total value = %s, want 255", got.TotalValue)
	}
	if len(got.Recent) != 2 || got.Recent[0].ID != "q2" {
		t.Errorf("recent = %+v", got.Recent)
	}
}
