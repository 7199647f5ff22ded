package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/collections"
	"orcaeletricista/models"
	"orcaeletricista/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	collections.AppStateCollection,
	collections.ServiceDefinitionsCollection,
	collections.MaterialDefinitionsCollection,
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_AppStateFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.AppStateCollection)

	for _, f := range []string{"state_key", "data", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("app_state: missing field %q", f)
		}
	}
	if _, ok := col.Fields.GetByName("data").(*core.JSONField); !ok {
		t.Errorf("app_state.data is not a JSONField")
	}
	if _, ok := col.Fields.GetByName("state_key").(*core.TextField); !ok {
		t.Errorf("app_state.state_key is not a TextField")
	}
}

func TestSetup_ServiceDefinitionsCategory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.ServiceDefinitionsCollection)

	for _, f := range []string{"code", "sort_order", "category", "description", "min_price", "max_price", "avg_price"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("service_definitions: missing field %q", f)
		}
	}

	sf, ok := col.Fields.GetByName("category").(*core.SelectField)
	if !ok {
		t.Fatalf("category field is not a SelectField")
	}
	if len(sf.Values) != len(models.ServiceCategories) {
		t.Fatalf("category values = %d, want %d", len(sf.Values), len(models.ServiceCategories))
	}
	for i, cat := range models.ServiceCategories {
		if sf.Values[i] != string(cat) {
			t.Errorf("category value[%d] = %q, want %q", i, sf.Values[i], cat)
		}
	}
}

func TestSetup_MaterialDefinitionsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.MaterialDefinitionsCollection)

	for _, f := range []string{"code", "sort_order", "description", "unit", "price"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("material_definitions: missing field %q", f)
		}
	}
}
