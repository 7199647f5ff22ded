package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"orcaeletricista/models"
	"orcaeletricista/services"
)

type serviceLineRequest struct {
	ServiceID string           `json:"serviceId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

type materialLineRequest struct {
	// MaterialID is empty for a freeform row.
	MaterialID  string           `json:"materialId"`
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        *string          `json:"unit"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
}

type quoteRequest struct {
	Client       services.ClientData   `json:"client"`
	Services     []serviceLineRequest  `json:"services"`
	Materials    []materialLineRequest `json:"materials"`
	TravelFee    decimal.Decimal       `json:"travelFee"`
	Discount     decimal.Decimal       `json:"discount"`
	Observations string                `json:"observations"`
	ValidUntil   *models.Date          `json:"validUntil"`
}

// quoteDetail is a quote together with its derived totals.
type quoteDetail struct {
	models.Quote
	Totals services.QuoteTotals `json:"totals"`
}

// buildDraft replays the request as authoring steps so catalog prices and
// quantity clamping apply exactly as they do interactively.
func buildDraft(catalog *models.Catalog, body quoteRequest) (*services.QuoteDraft, error) {
	draft := services.NewQuoteDraft()
	draft.Client = body.Client
	draft.TravelFee = body.TravelFee
	draft.Discount = body.Discount
	draft.Observations = body.Observations
	if body.ValidUntil != nil && !body.ValidUntil.IsZero() {
		draft.ValidUntil = body.ValidUntil
	}

	for _, line := range body.Services {
		def, ok := catalog.Service(line.ServiceID)
		if !ok {
			return nil, fmt.Errorf("service %q: %w", line.ServiceID, services.ErrUnknownService)
		}
		id := draft.AddService(def)
		if line.Quantity != 0 {
			if err := draft.SetServiceQuantity(id, line.Quantity); err != nil {
				return nil, err
			}
		}
		if line.UnitPrice != nil {
			if err := draft.SetServiceUnitPrice(id, *line.UnitPrice); err != nil {
				return nil, err
			}
		}
	}

	for _, line := range body.Materials {
		var id string
		if line.MaterialID != "" {
			def, ok := catalog.Material(line.MaterialID)
			if !ok {
				return nil, fmt.Errorf("material %q: %w", line.MaterialID, services.ErrUnknownMaterial)
			}
			id = draft.AddMaterialFromCatalog(def)
		} else {
			id = draft.AddFreeformMaterial()
		}
		if err := applyMaterialEdits(draft, id, line); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

func applyMaterialEdits(draft *services.QuoteDraft, id string, line materialLineRequest) error {
	if line.Description != nil {
		if err := draft.SetMaterialDescription(id, *line.Description); err != nil {
			return err
		}
	}
	if line.Unit != nil {
		if err := draft.SetMaterialUnit(id, *line.Unit); err != nil {
			return err
		}
	}
	if line.Quantity != nil {
		if err := draft.SetMaterialQuantity(id, *line.Quantity); err != nil {
			return err
		}
	}
	if line.UnitPrice != nil {
		if err := draft.SetMaterialUnitPrice(id, *line.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

// HandleQuoteList lists quotes, newest first, filtered by ?q= on client name
// or address.
func HandleQuoteList(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotes := services.FilterQuotes(d.State.Snapshot().Quotes, e.Request.URL.Query().Get("q"))
		return e.JSON(http.StatusOK, services.Summarize(quotes))
	}
}

// HandleQuoteCreate finalizes a draft and stores it as a pending quote.
func HandleQuoteCreate(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body quoteRequest
		if err := e.BindBody(&body); err != nil {
			log.Printf("quote_create: failed to bind body: %v", err)
			return ErrorNotice(e, http.StatusBadRequest, "Requisição inválida.")
		}

		draft, err := buildDraft(d.Catalog, body)
		if err != nil {
			return failWith(e, "quote_create", err)
		}
		quote, err := draft.Finalize(d.now())
		if err != nil {
			return failWith(e, "quote_create", err)
		}
		if _, err := d.State.AddQuote(quote); err != nil {
			return failWith(e, "quote_create", err)
		}

		log.Printf("quote_create: created quote %s for %q", quote.ID, quote.ClientName)
		SetNotice(e, "success", "Orçamento salvo com sucesso!")
		return e.JSON(http.StatusCreated, quoteDetail{Quote: quote, Totals: services.CalcQuoteTotals(quote)})
	}
}

// HandleQuoteGet returns one quote with its totals.
func HandleQuoteGet(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := d.State.FindQuote(e.Request.PathValue("id"))
		if err != nil {
			return failWith(e, "quote_get", err)
		}
		return e.JSON(http.StatusOK, quoteDetail{Quote: quote, Totals: services.CalcQuoteTotals(quote)})
	}
}

type statusRequest struct {
	Status models.QuoteStatus `json:"status"`
}

// HandleQuoteStatus sets the status of a quote. Any transition is allowed.
func HandleQuoteStatus(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		var body statusRequest
		if err := e.BindBody(&body); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Requisição inválida.")
		}

		quote, err := d.State.UpdateQuoteStatus(id, body.Status)
		if err != nil {
			return failWith(e, "quote_status", err)
		}

		SetNotice(e, "success", "Status atualizado: "+body.Status.Label())
		return e.JSON(http.StatusOK, quoteDetail{Quote: quote, Totals: services.CalcQuoteTotals(quote)})
	}
}

// HandleQuoteDelete removes a quote. Confirmation is the client's concern.
func HandleQuoteDelete(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if _, err := d.State.DeleteQuote(id); err != nil {
			return failWith(e, "quote_delete", err)
		}
		log.Printf("quote_delete: deleted quote %s", id)
		SetNotice(e, "success", "Orçamento excluído.")
		return e.NoContent(http.StatusNoContent)
	}
}
