package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"orcaeletricista/models"
	"orcaeletricista/services"
	"orcaeletricista/testhelpers"
)

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestDeps wires handlers against a seeded app, a fresh export dir and a
// fixed clock. The given quotes are stored oldest first, so the last one ends
// up at the head of the collection.
func newTestDeps(t *testing.T, quotes ...models.Quote) (*pocketbase.PocketBase, *Deps) {
	t.Helper()

	app := testhelpers.NewSeededTestApp(t)
	catalog, err := services.LoadCatalog(app)
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	state, err := services.NewStateController(services.NewRecordStateStore(app, ""))
	if err != nil {
		t.Fatalf("failed to create state controller: %v", err)
	}
	for _, q := range quotes {
		if _, err := state.AddQuote(q); err != nil {
			t.Fatalf("failed to add quote %s: %v", q.ID, err)
		}
	}

	return app, &Deps{
		Catalog:   catalog,
		State:     state,
		Documents: services.NewDocumentGenerator(t.TempDir(), time.UTC, nil),
		Now:       func() time.Time { return testNow },
	}
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
