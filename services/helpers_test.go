package services

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"

	"orcaeletricista/models"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sampleQuote returns a fully populated quote used across document tests.
func sampleQuote() models.Quote {
	return models.Quote{
		ID:          "k3j9x2abc",
		ClientName:  "João da Silva",
		ClientPhone: "(11) 98888-7777",
		Address:     "Rua das Flores, 123 - Centro, São Paulo",
		Date:        time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Services: []models.SelectedService{
			{ID: "s1", ServiceID: "i1", Description: "Instalação de Interruptor Simples ou Pulsador", Quantity: 2, UnitPrice: dec("55")},
			{ID: "s2", ServiceID: "q2", Description: "Instalação de IDR", Quantity: 1, UnitPrice: dec("140")},
		},
		Materials: []models.MaterialItem{
			{ID: "m1", Description: "Cabo Flexível 2,5mm² - Azul", Quantity: dec("30"), Unit: "m", UnitPrice: dec("3.80")},
		},
		Observations: "Garantia de 90 dias.\nPagamento em até 3x.",
		TravelFee:    dec("20"),
		Discount:     dec("10"),
		Status:       models.StatusPending,
	}
}
