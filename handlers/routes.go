package handlers

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
)

// RegisterRoutes binds the JSON API under /api.
func RegisterRoutes(r *router.Router[*core.RequestEvent], d *Deps) {
	api := r.Group("/api")

	// ── State ────────────────────────────────────────────────
	api.GET("/state", HandleStateGet(d))
	api.POST("/state/tab", HandleStateTab(d))

	// ── Catalog ──────────────────────────────────────────────
	api.GET("/catalog/services", HandleCatalogServices(d))
	api.GET("/catalog/categories", HandleCatalogCategories(d))
	api.GET("/catalog/materials", HandleCatalogMaterials(d))
	api.GET("/catalog/export/pdf", HandleCatalogExportPDF(d))

	// ── Dashboard ────────────────────────────────────────────
	api.GET("/dashboard", HandleDashboard(d))

	// ── Quotes ───────────────────────────────────────────────
	api.GET("/quotes/export/excel", HandleQuotesExportExcel(d))
	api.GET("/quotes", HandleQuoteList(d))
	api.POST("/quotes", HandleQuoteCreate(d))
	api.GET("/quotes/{id}", HandleQuoteGet(d))
	api.PATCH("/quotes/{id}/status", HandleQuoteStatus(d))
	api.DELETE("/quotes/{id}", HandleQuoteDelete(d))

	// ── Documents ────────────────────────────────────────────
	api.GET("/quotes/{id}/pdf", HandleQuotePDF(d))
	api.POST("/quotes/{id}/save", HandleQuoteSave(d))
	api.POST("/quotes/{id}/preview", HandleQuotePreview(d))
	api.GET("/quotes/{id}/share", HandleQuoteShare(d))
	api.GET("/previews/{handle}", HandlePreviewGet(d))
	api.DELETE("/previews/{handle}", HandlePreviewRelease(d))
}
