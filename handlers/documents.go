package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/services"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// previewResponse tells the client where to fetch a preview and how to free it.
type previewResponse struct {
	Handle   string `json:"handle"`
	QuoteID  string `json:"quoteId"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// HandleQuotePDF downloads the quote document under its save-mode filename.
func HandleQuotePDF(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := d.State.FindQuote(e.Request.PathValue("id"))
		if err != nil {
			return failWith(e, "quote_pdf", err)
		}

		pdfBytes, err := d.Documents.Bytes(quote)
		if err != nil {
			log.Printf("quote_pdf: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Falha ao gerar o PDF.")
		}
		return sendFile(e, pdfContentType, "attachment", services.QuoteFilename(quote), pdfBytes)
	}
}

// HandleQuoteSave writes the quote document into the export directory.
func HandleQuoteSave(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := d.State.FindQuote(e.Request.PathValue("id"))
		if err != nil {
			return failWith(e, "quote_save", err)
		}

		res, err := d.Documents.Render(quote, services.RenderSave)
		if err != nil {
			log.Printf("quote_save: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Falha ao salvar o PDF.")
		}

		SetNotice(e, "success", "PDF salvo.")
		return e.JSON(http.StatusOK, map[string]string{"path": res.Path})
	}
}

// HandleQuotePreview renders the quote into a new preview and returns its
// handle. Each call yields an independent preview.
func HandleQuotePreview(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := d.State.FindQuote(e.Request.PathValue("id"))
		if err != nil {
			return failWith(e, "quote_preview", err)
		}

		res, err := d.Documents.Render(quote, services.RenderPreview)
		if err != nil {
			log.Printf("quote_preview: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Falha ao gerar a pré-visualização.")
		}

		p := res.Preview
		return e.JSON(http.StatusCreated, previewResponse{
			Handle:   p.Handle,
			QuoteID:  p.QuoteID,
			Filename: p.Filename,
			URL:      fmt.Sprintf("/api/previews/%s", p.Handle),
		})
	}
}

// HandlePreviewGet streams a held preview inline.
func HandlePreviewGet(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := d.Documents.Previews().Get(e.Request.PathValue("handle"))
		if err != nil {
			return failWith(e, "preview_get", err)
		}
		return sendFile(e, pdfContentType, "inline", p.Filename, p.Data)
	}
}

// HandlePreviewRelease frees a preview. A second release is a 404.
func HandlePreviewRelease(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := d.Documents.Previews().Release(e.Request.PathValue("handle")); err != nil {
			return failWith(e, "preview_release", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleQuoteShare returns the share text and links of a quote.
func HandleQuoteShare(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := d.State.FindQuote(e.Request.PathValue("id"))
		if err != nil {
			return failWith(e, "quote_share", err)
		}
		return e.JSON(http.StatusOK, services.BuildShareSummary(quote, d.location()))
	}
}

// HandleQuotesExportExcel downloads the quote list, filtered by ?q=, as a
// workbook.
func HandleQuotesExportExcel(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotes := services.FilterQuotes(d.State.Snapshot().Quotes, e.Request.URL.Query().Get("q"))

		xlsxBytes, err := services.GenerateQuotesExcel(quotes, d.location())
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Falha ao gerar a planilha.")
		}

		filename := fmt.Sprintf("Orcamentos_%s.xlsx", d.now().In(d.location()).Format("2006-01-02"))
		return sendFile(e, xlsxContentType, "attachment", filename, xlsxBytes)
	}
}
