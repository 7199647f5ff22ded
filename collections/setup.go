package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/models"
)

// Collection names used across the app.
const (
	AppStateCollection            = "app_state"
	ServiceDefinitionsCollection  = "service_definitions"
	MaterialDefinitionsCollection = "material_definitions"
)

// stateMaxSize bounds the serialized application state (10 MiB).
const stateMaxSize = 10 << 20

// Setup programmatically creates/ensures the app_state, service_definitions
// and material_definitions collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, AppStateCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "state_key", Required: true})
		c.Fields.Add(&core.JSONField{Name: "data", MaxSize: stateMaxSize})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_app_state_key", true, "state_key", "")
	})

	categories := make([]string, 0, len(models.ServiceCategories))
	for _, cat := range models.ServiceCategories {
		categories = append(categories, string(cat))
	}

	ensureCollection(app, ServiceDefinitionsCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    categories,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "min_price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "max_price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "avg_price", Required: false})
		c.AddIndex("idx_service_definitions_code", true, "code", "")
	})

	ensureCollection(app, MaterialDefinitionsCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price", Required: false})
		c.AddIndex("idx_material_definitions_code", true, "code", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
