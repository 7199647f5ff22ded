package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/models"
	"orcaeletricista/services"
)

// HandleCatalogServices lists services matching ?q= and, optionally,
// ?category=.
func HandleCatalogServices(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query()
		category := models.ServiceCategory(query.Get("category"))
		if category != "" && !category.Valid() {
			return ErrorNotice(e, http.StatusBadRequest, "Categoria inválida.")
		}
		return e.JSON(http.StatusOK, services.SearchServices(d.Catalog, query.Get("q"), category))
	}
}

// HandleCatalogCategories lists every category with its service count.
func HandleCatalogCategories(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.CategoryCounts(d.Catalog))
	}
}

// HandleCatalogMaterials lists materials matching ?q=.
func HandleCatalogMaterials(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.SearchMaterials(d.Catalog, e.Request.URL.Query().Get("q")))
	}
}

// HandleCatalogExportPDF downloads the printable price table.
func HandleCatalogExportPDF(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		now := d.now()
		pdfBytes, err := services.GenerateCatalogPDF(d.Catalog, now, d.location())
		if err != nil {
			log.Printf("catalog_pdf: failed to generate: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Falha ao gerar a tabela de preços.")
		}

		filename := fmt.Sprintf("Tabela_Precos_%d.pdf", now.In(d.location()).Year())
		return sendFile(e, "application/pdf", "attachment", filename, pdfBytes)
	}
}
