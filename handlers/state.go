package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/models"
)

// HandleStateGet returns the whole persisted state.
func HandleStateGet(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, d.State.Snapshot())
	}
}

type tabRequest struct {
	Tab models.Tab `json:"tab"`
}

// HandleStateTab switches the active view.
func HandleStateTab(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body tabRequest
		if err := e.BindBody(&body); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Requisição inválida.")
		}

		state, err := d.State.SetActiveTab(body.Tab)
		if err != nil {
			return failWith(e, "state_tab", err)
		}
		return e.JSON(http.StatusOK, state)
	}
}
