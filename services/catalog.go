package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"orcaeletricista/models"
)

// LoadCatalog reads the seeded reference tables once. The returned catalog is
// never mutated afterwards.
func LoadCatalog(app core.App) (*models.Catalog, error) {
	serviceRecords, err := app.FindAllRecords("service_definitions")
	if err != nil {
		return nil, fmt.Errorf("failed to load service definitions: %w", err)
	}
	materialRecords, err := app.FindAllRecords("material_definitions")
	if err != nil {
		return nil, fmt.Errorf("failed to load material definitions: %w", err)
	}

	sortBySortOrder(serviceRecords)
	sortBySortOrder(materialRecords)

	catalog := &models.Catalog{
		Services:  make([]models.ServiceDefinition, 0, len(serviceRecords)),
		Materials: make([]models.MaterialDefinition, 0, len(materialRecords)),
	}
	for _, r := range serviceRecords {
		catalog.Services = append(catalog.Services, models.ServiceDefinition{
			ID:          r.GetString("code"),
			Category:    models.ServiceCategory(r.GetString("category")),
			Description: r.GetString("description"),
			MinPrice:    decimal.NewFromFloat(r.GetFloat("min_price")),
			MaxPrice:    decimal.NewFromFloat(r.GetFloat("max_price")),
			AvgPrice:    decimal.NewFromFloat(r.GetFloat("avg_price")),
		})
	}
	for _, r := range materialRecords {
		catalog.Materials = append(catalog.Materials, models.MaterialDefinition{
			ID:          r.GetString("code"),
			Description: r.GetString("description"),
			Unit:        r.GetString("unit"),
			Price:       decimal.NewFromFloat(r.GetFloat("price")),
		})
	}
	return catalog, nil
}

func sortBySortOrder(records []*core.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GetInt("sort_order") < records[j].GetInt("sort_order")
	})
}

// containsFold reports whether needle occurs in haystack ignoring case.
func containsFold(haystack, needle string) bool {
	folder := cases.Fold()
	return strings.Contains(folder.String(haystack), folder.String(needle))
}

// SearchServices filters services whose description or category contains
// term. A non-empty category restricts the result to that category.
func SearchServices(catalog *models.Catalog, term string, category models.ServiceCategory) []models.ServiceDefinition {
	term = strings.TrimSpace(term)
	result := []models.ServiceDefinition{}
	for _, s := range catalog.Services {
		if category != "" && s.Category != category {
			continue
		}
		if term == "" || containsFold(s.Description, term) || containsFold(string(s.Category), term) {
			result = append(result, s)
		}
	}
	return result
}

// SearchMaterials filters materials by description.
func SearchMaterials(catalog *models.Catalog, term string) []models.MaterialDefinition {
	term = strings.TrimSpace(term)
	result := []models.MaterialDefinition{}
	for _, m := range catalog.Materials {
		if term == "" || containsFold(m.Description, term) {
			result = append(result, m)
		}
	}
	return result
}

// CategoryCount is the number of catalog services in one category.
type CategoryCount struct {
	Category models.ServiceCategory `json:"category"`
	Count    int                    `json:"count"`
}

// CategoryCounts returns one entry per fixed category, in catalog order,
// including categories with no services.
func CategoryCounts(catalog *models.Catalog) []CategoryCount {
	counts := make(map[models.ServiceCategory]int, len(models.ServiceCategories))
	for _, s := range catalog.Services {
		counts[s.Category]++
	}
	result := make([]CategoryCount, 0, len(models.ServiceCategories))
	for _, cat := range models.ServiceCategories {
		result = append(result, CategoryCount{Category: cat, Count: counts[cat]})
	}
	return result
}
