package models

import "github.com/shopspring/decimal"

// ServiceCategory groups catalog services. The value is the display label.
type ServiceCategory string

const (
	CategoryIluminacao           ServiceCategory = "Iluminação"
	CategoryPontoUtilizacao      ServiceCategory = "Ponto de Utilização"
	CategoryQuadrosDistribuicao  ServiceCategory = "Quadros de Distribuição / Painel"
	CategoryPassagemCabos        ServiceCategory = "Passagem de Cabos"
	CategorySolucaoProblemas     ServiceCategory = "Solução de Problemas Elétricos"
	CategoryPadraoEntrada        ServiceCategory = "Padrão de Entrada"
	CategoryCarregadorVeicular   ServiceCategory = "Carregador Veicular"
	CategoryAutomacaoResidencial ServiceCategory = "Automação Residencial"
)

// ServiceCategories lists the fixed categories in catalog order.
var ServiceCategories = []ServiceCategory{
	CategoryIluminacao,
	CategoryPontoUtilizacao,
	CategoryQuadrosDistribuicao,
	CategoryPassagemCabos,
	CategorySolucaoProblemas,
	CategoryPadraoEntrada,
	CategoryCarregadorVeicular,
	CategoryAutomacaoResidencial,
}

// Valid reports whether c is one of the fixed categories.
func (c ServiceCategory) Valid() bool {
	for _, v := range ServiceCategories {
		if c == v {
			return true
		}
	}
	return false
}

// ServiceDefinition is a reference labor price.
type ServiceDefinition struct {
	ID          string          `json:"id"`
	Category    ServiceCategory `json:"category"`
	Description string          `json:"description"`
	MinPrice    decimal.Decimal `json:"minPrice"`
	MaxPrice    decimal.Decimal `json:"maxPrice"`
	AvgPrice    decimal.Decimal `json:"avgPrice"`
}

// MaterialDefinition is a reference material price.
type MaterialDefinition struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
}

// Catalog is the read-only pair of reference tables.
type Catalog struct {
	Services  []ServiceDefinition
	Materials []MaterialDefinition
}

// Service looks up a service definition by id.
func (c *Catalog) Service(id string) (ServiceDefinition, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return ServiceDefinition{}, false
}

// Material looks up a material definition by id.
func (c *Catalog) Material(id string) (MaterialDefinition, bool) {
	for _, m := range c.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return MaterialDefinition{}, false
}
