// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"

	"orcaeletricista/collections"
	"orcaeletricista/models"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// NewSeededTestApp is NewTestApp with the reference price tables loaded.
func NewSeededTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("failed to seed test app: %v", err)
	}
	return app
}

// NewTestQuote builds a pending quote with one service line and one material
// line. The grand total is 2*55 + 3*2.50 + 20 - 10 = 127.50.
func NewTestQuote(id, clientName string) models.Quote {
	return models.Quote{
		ID:          id,
		ClientName:  clientName,
		ClientPhone: "(11) 91234-5678",
		Address:     "Av. Paulista, 1000",
		Date:        time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Services: []models.SelectedService{
			{ID: id + "s1", ServiceID: "i1", Description: "Instalação de Interruptor Simples ou Pulsador", Quantity: 2, UnitPrice: decimal.NewFromInt(55)},
		},
		Materials: []models.MaterialItem{
			{ID: id + "m1", Description: "Fita Isolante 20m", Quantity: decimal.NewFromInt(3), Unit: "un", UnitPrice: decimal.RequireFromString("2.50")},
		},
		TravelFee: decimal.NewFromInt(20),
		Discount:  decimal.NewFromInt(10),
		Status:    models.StatusPending,
	}
}
