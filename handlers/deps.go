// Package handlers exposes the quote workflow as a JSON API on the
// PocketBase router.
package handlers

import (
	"time"

	"orcaeletricista/models"
	"orcaeletricista/services"
)

// Deps is what every handler needs: the reference tables, the state
// controller and the document generator.
type Deps struct {
	Catalog   *models.Catalog
	State     *services.StateController
	Documents *services.DocumentGenerator
	// Now is the clock used for new quotes and export names.
	Now func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Deps) location() *time.Location {
	if loc := d.Documents.Location(); loc != nil {
		return loc
	}
	return time.UTC
}
