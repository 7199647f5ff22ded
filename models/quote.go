// Package models holds the plain data types shared by the quote pipeline.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus is the lifecycle marker of a quote. Any status may be set from
// any other.
type QuoteStatus string

const (
	StatusPending   QuoteStatus = "pending"
	StatusApproved  QuoteStatus = "approved"
	StatusCompleted QuoteStatus = "completed"
	StatusCancelled QuoteStatus = "cancelled"
)

// QuoteStatuses lists every valid status in display order.
var QuoteStatuses = []QuoteStatus{StatusPending, StatusApproved, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s QuoteStatus) Valid() bool {
	for _, v := range QuoteStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// SelectedService is a labor line copied from a ServiceDefinition.
type SelectedService struct {
	ID          string          `json:"id"`
	ServiceID   string          `json:"serviceId"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// MaterialItem is a material line, either picked from the catalog or typed in.
type MaterialItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Quote is a priced proposal for one client.
type Quote struct {
	ID           string            `json:"id"`
	ClientName   string            `json:"clientName"`
	ClientPhone  string            `json:"clientPhone"`
	Address      string            `json:"address"`
	Date         time.Time         `json:"date"`
	ValidUntil   *Date             `json:"validUntil,omitempty"`
	Services     []SelectedService `json:"services"`
	Materials    []MaterialItem    `json:"materials"`
	Observations string            `json:"observations"`
	Discount     decimal.Decimal   `json:"discount"`
	TravelFee    decimal.Decimal   `json:"travelFee"`
	Status       QuoteStatus       `json:"status"`
}

// Label is the pt-BR display name of the status.
func (s QuoteStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusApproved:
		return "Aprovado"
	case StatusCompleted:
		return "Concluído"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}
