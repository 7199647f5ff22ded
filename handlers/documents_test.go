package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"orcaeletricista/services"
	"orcaeletricista/testhelpers"
)

func quoteRequestFor(method, target, id string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.SetPathValue("id", id)
	return req
}

func TestHandleQuotePDF(t *testing.T) {
	app, d := newTestDeps(t, testhelpers.NewTestQuote("k3j9x2abc", "João da Silva"))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, quoteRequestFor(http.MethodGet, "/api/quotes/k3j9x2abc/pdf", "k3j9x2abc"), rec)

	if err := HandleQuotePDF(d)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment") {
		t.Errorf("Content-Disposition = %q, want attachment", cd)
	}
	// non-ASCII names go out RFC 2231 encoded
	if !strings.Contains(cd, "Orcamento_Jo%C3%A3o_da_Silva_K3J9X2ABC.pdf") {
		t.Errorf("Content-Disposition = %q, want encoded quote filename", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("body is not a PDF")
	}
}

func TestHandleQuotePDF_NotFound(t *testing.T) {
	app, d := newTestDeps(t)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, quoteRequestFor(http.MethodGet, "/api/quotes/nope/pdf", "nope"), rec)

	if err := HandleQuotePDF(d)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleQuoteSave(t *testing.T) {
	app, d := newTestDeps(t, testhelpers.NewTestQuote("a1", "Ana"))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, quoteRequestFor(http.MethodPost, "/api/quotes/a1/save", "a1"), rec)

	if err := HandleQuoteSave(d)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decodeJSON(t, rec, &body)
	if !strings.HasSuffix(body["path"], "Orcamento_Ana_A1.pdf") {
		t.Errorf("path = %q", body["path"])
	}
	data, err := os.ReadFile(body["path"])
	if err != nil {
		t.Fatalf("saved file not readable: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Error("saved file is not a PDF")
	}
}

func TestHandlePreviewLifecycle(t *testing.T) {
	app, d := newTestDeps(t, testhelpers.NewTestQuote("a1", "Ana"))

	createPreview := func() previewResponse {
		t.Helper()
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, quoteRequestFor(http.MethodPost, "/api/quotes/a1/preview", "a1"), rec)
		if err := HandleQuotePreview(d)(e); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		var p previewResponse
		decodeJSON(t, rec, &p)
		return p
	}
	handleRequest := func(method, handle string) *http.Request {
		req := httptest.NewRequest(method, "/api/previews/"+handle, nil)
		req.SetPathValue("handle", handle)
		return req
	}

	first := createPreview()
	second := createPreview()
	if first.Handle == second.Handle {
		t.Fatal("expected independent preview handles")
	}
	if first.URL != "/api/previews/"+first.Handle {
		t.Errorf("url = %q", first.URL)
	}
	if first.Filename != "Orcamento_Ana_A1.pdf" || first.QuoteID != "a1" {
		t.Errorf("preview = %+v", first)
	}

	// view inline
	rec := httptest.NewRecorder()
	if err := HandlePreviewGet(d)(newTestRequestEvent(app, handleRequest(http.MethodGet, first.Handle), rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Fatalf("preview get status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "inline") {
		t.Errorf("Content-Disposition = %q, want inline", cd)
	}

	// release first, second stays readable
	rec = httptest.NewRecorder()
	if err := HandlePreviewRelease(d)(newTestRequestEvent(app, handleRequest(http.MethodDelete, first.Handle), rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("release status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	_ = HandlePreviewGet(d)(newTestRequestEvent(app, handleRequest(http.MethodGet, first.Handle), rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("released preview status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	_ = HandlePreviewRelease(d)(newTestRequestEvent(app, handleRequest(http.MethodDelete, first.Handle), rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("double release status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	_ = HandlePreviewGet(d)(newTestRequestEvent(app, handleRequest(http.MethodGet, second.Handle), rec))
	if rec.Code != http.StatusOK {
		t.Errorf("second preview status = %d, want 200", rec.Code)
	}
	if n := d.Documents.Previews().Len(); n != 1 {
		t.Errorf("held previews = %d, want 1", n)
	}
}

func TestHandleQuoteShare(t *testing.T) {
	app, d := newTestDeps(t, testhelpers.NewTestQuote("a1", "Ana Souza"))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, quoteRequestFor(http.MethodGet, "/api/quotes/a1/share", "a1"), rec)

	if err := HandleQuoteShare(d)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var got services.ShareSummary
	decodeJSON(t, rec, &got)
	if !strings.Contains(got.Message, "*Cliente:* Ana Souza") {
		t.Errorf("message = %q", got.Message)
	}
	if !strings.Contains(got.Message, "R$ 127,50") {
		t.Errorf("message missing grand total: %q", got.Message)
	}
	if !strings.HasPrefix(got.WhatsAppURL, "https://api.whatsapp.com/send?text=") {
		t.Errorf("whatsapp url = %q", got.WhatsAppURL)
	}
	if !strings.HasPrefix(got.MailtoURL, "mailto:?subject=") {
		t.Errorf("mailto url = %q", got.MailtoURL)
	}
}

func TestHandleQuotesExportExcel(t *testing.T) {
	app, d := newTestDeps(t,
		testhelpers.NewTestQuote("q1", "Ana Souza"),
		testhelpers.NewTestQuote("q2", "Bruno Lima"),
	)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, httptest.NewRequest(http.MethodGet, "/api/quotes/export/excel?q=bruno", nil), rec)

	if err := HandleQuotesExportExcel(d)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Orcamentos_2025-03-14.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("body is not a workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Orçamentos")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// header, one filtered quote, blank, aggregate
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[1][1] != "Bruno Lima" {
		t.Errorf("row client = %q, want Bruno Lima", rows[1][1])
	}
}
