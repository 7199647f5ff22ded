package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/services"
)

// HandleDashboard returns the aggregate figures and the latest quotes.
func HandleDashboard(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.BuildDashboard(d.State.Snapshot().Quotes))
	}
}
