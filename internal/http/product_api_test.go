package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"atelier/internal/filters"
)

type productBody struct {
	ID         int64               `json:"id"`
	CategoryID int64               `json:"categoryId"`
	NameEn     string              `json:"nameEn"`
	Price      float64             `json:"price"`
	Images     []filters.ImageLink `json:"images"`
	Filters    filters.Filters     `json:"filters"`
}

func TestProductCreateWithFiltersAndImages(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	resp := doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": catID,
		"nameEn":     "Custom Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price": 1500,
		"images": []map[string]any{
			{"url": "http://x/img.png", "modelIds": []int{0}},
		},
		"filters": map[string]any{
			"materialFromUs": map[string]any{
				"required": false, "type": false, "priceModifier": 200,
				"help": map[string]string{"en": "", "ru": "подсказка", "arm": ""},
			},
			"photoEdit": true, // not editable through the API; must come back false
			"model": []map[string]any{
				{"size": map[string]string{"en": "Small", "ru": "Малый", "arm": "Փոքր"}, "priceModifier": 0},
			},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	var p productBody
	decodeBody(t, resp, &p)

	if len(p.Images) != 1 || p.Images[0].URL != "http://x/img.png" || len(p.Images[0].ModelIDs) != 1 || p.Images[0].ModelIDs[0] != 0 {
		t.Fatalf("images: %+v", p.Images)
	}
	if len(p.Filters.Model) != 1 || p.Filters.Model[0].Size.En != "Small" {
		t.Fatalf("filters.model: %+v", p.Filters.Model)
	}
	if p.Filters.MaterialFromUs.PriceModifier != 200 || p.Filters.MaterialFromUs.Help.Ru != "подсказка" {
		t.Fatalf("materialFromUs: %+v", p.Filters.MaterialFromUs)
	}
	if p.Filters.PhotoEdit {
		t.Fatal("photoEdit must be forced false on create")
	}
}

func TestProductFiltersStoredSparse(t *testing.T) {
	app, db := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	resp := doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": catID,
		"nameEn":     "Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price": 1000,
		"filters": map[string]any{
			"materialFromUs": map[string]any{"required": true, "type": false, "priceModifier": 500,
				"help": map[string]string{"en": "", "ru": "x", "arm": ""}},
			"productSize": []any{},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	var p productBody
	decodeBody(t, resp, &p)

	var stored string
	if err := db.Get(&stored, `SELECT filters_json FROM products WHERE id=?`, p.ID); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"productSize", "printSize", "model"} {
		if strings.Contains(stored, key) {
			t.Fatalf("empty %s key stored: %s", key, stored)
		}
	}
	// Inconsistent required state must be stored self-healed.
	if p.Filters.MaterialFromUs != (filters.Material{Required: true, Type: true}) {
		t.Fatalf("material not canonicalized: %+v", p.Filters.MaterialFromUs)
	}
}

func TestProductFiltersAcceptedAsString(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	doc := `{"materialFromUs":{"required":false,"type":false,"priceModifier":0,"help":{"en":"","ru":"","arm":""}},"photoEdit":false,"model":[{"size":{"en":"Mug","ru":"","arm":""},"priceModifier":0}]}`
	resp := doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": catID,
		"nameEn":     "Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price":   1000,
		"filters": doc, // JSON-encoded string, the legacy form-field shape
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	var p productBody
	decodeBody(t, resp, &p)
	if len(p.Filters.Model) != 1 || p.Filters.Model[0].Size.En != "Mug" {
		t.Fatalf("filters.model: %+v", p.Filters.Model)
	}
}

func TestProductImageValidation(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	// Link references a model option that does not exist.
	resp := doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": catID,
		"nameEn":     "Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price":  1000,
		"images": []map[string]any{{"url": "http://x/a.png", "modelIds": []int{0}}},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("link without models: status %d, want 400", resp.StatusCode)
	}

	// Link with an empty selection set.
	resp = doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": catID,
		"nameEn":     "Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price":  1000,
		"images": []map[string]any{{"url": "http://x/a.png", "modelIds": []int{}}},
		"filters": map[string]any{
			"model": []map[string]any{{"size": map[string]string{"en": "S", "ru": "", "arm": ""}, "priceModifier": 0}},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty modelIds: status %d, want 400", resp.StatusCode)
	}
}

func TestProductPartialUpdate(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	resp := doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": catID,
		"nameEn":     "Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price": 1500,
		"filters": map[string]any{
			"model": []map[string]any{{"size": map[string]string{"en": "S", "ru": "", "arm": ""}, "priceModifier": 0}},
		},
	})
	var created productBody
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/products/%d", created.ID), token, map[string]any{
		"price": 1800,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: status %d", resp.StatusCode)
	}
	var patched productBody
	decodeBody(t, resp, &patched)
	if patched.Price != 1800 {
		t.Fatalf("price: %v", patched.Price)
	}
	if len(patched.Filters.Model) != 1 {
		t.Fatalf("filters lost on unrelated patch: %+v", patched.Filters)
	}
	if patched.NameEn != "Mug" {
		t.Fatalf("name changed: %q", patched.NameEn)
	}
}

func TestProductMalformedStoredFiltersDegradesToDefaults(t *testing.T) {
	app, db := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	resp := doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": catID,
		"nameEn":     "Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price": 1000,
	})
	var p productBody
	decodeBody(t, resp, &p)

	if _, err := db.Exec(`UPDATE products SET filters_json='not-json' WHERE id=?`, p.ID); err != nil {
		t.Fatal(err)
	}

	resp = doJSON(t, app, "GET", fmt.Sprintf("/products/%d", p.ID), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get with malformed filters: status %d", resp.StatusCode)
	}
	var got productBody
	decodeBody(t, resp, &got)
	if got.Filters.Model != nil || got.Filters.ProductSize != nil || got.Filters.PrintSize != nil {
		t.Fatalf("size editors must come back empty: %+v", got.Filters)
	}
	if got.Filters.MaterialFromUs != (filters.Material{}) {
		t.Fatalf("material must come back default: %+v", got.Filters.MaterialFromUs)
	}
}

func TestProductPhotoEditPreservedOnUpdate(t *testing.T) {
	app, db := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	resp := doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": catID,
		"nameEn":     "Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price": 1000,
	})
	var p productBody
	decodeBody(t, resp, &p)

	// photoEdit is owned by the storefront side; plant it in the stored doc.
	stored := filters.Default()
	stored.PhotoEdit = true
	if _, err := db.Exec(`UPDATE products SET filters_json=? WHERE id=?`, string(stored.Encode()), p.ID); err != nil {
		t.Fatal(err)
	}

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/products/%d", p.ID), token, map[string]any{
		"filters": map[string]any{
			"photoEdit": false, // client cannot flip it
			"model": []map[string]any{
				{"size": map[string]string{"en": "S", "ru": "", "arm": ""}, "priceModifier": 0},
			},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: status %d", resp.StatusCode)
	}
	var patched productBody
	decodeBody(t, resp, &patched)
	if !patched.Filters.PhotoEdit {
		t.Fatal("photoEdit lost on update")
	}
	if len(patched.Filters.Model) != 1 {
		t.Fatalf("model list not applied: %+v", patched.Filters)
	}
}

func TestProductCreateValidation(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	cases := []map[string]any{
		{"nameEn": "X", "nameRu": "X", "nameArm": "X", "price": 1},               // no category
		{"categoryId": 999, "nameEn": "X", "nameRu": "X", "nameArm": "X", "price": 1}, // unknown category
		{"categoryId": catID, "nameEn": "X", "nameRu": "X", "price": 1},          // missing nameArm
		{"categoryId": catID, "nameEn": "X", "nameRu": "X", "nameArm": "X", "price": -5},
	}
	for i, body := range cases {
		resp := doJSON(t, app, "POST", "/products", token, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("case %d: status %d, want 400", i, resp.StatusCode)
		}
	}
}

func TestProductListFilteredByCategory(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)
	mugsID := mustCreateCategory(t, app, token, "mugs")
	shirtsID := mustCreateCategory(t, app, token, "shirts")

	doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": mugsID,
		"nameEn":     "Mug", "nameRu": "Кружка", "nameArm": "Բաժակ",
		"price": 1000,
	})
	doJSON(t, app, "POST", "/products", token, map[string]any{
		"categoryId": shirtsID,
		"nameEn":     "Shirt", "nameRu": "Футболка", "nameArm": "Շապիկ",
		"price": 2000,
	})

	resp := doJSON(t, app, "GET", fmt.Sprintf("/products?category=%d", mugsID), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	var ps []productBody
	decodeBody(t, resp, &ps)
	if len(ps) != 1 || ps[0].NameEn != "Mug" {
		t.Fatalf("filtered list: %+v", ps)
	}

	resp = doJSON(t, app, "GET", "/products?category=zero", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("bad category param: status %d", resp.StatusCode)
	}
}

func TestProductListHydratesEveryRecord(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)
	catID := mustCreateCategory(t, app, token, "mugs")

	for i := 0; i < 2; i++ {
		doJSON(t, app, "POST", "/products", token, map[string]any{
			"categoryId": catID,
			"nameEn":     fmt.Sprintf("Mug %d", i), "nameRu": "Кружка", "nameArm": "Բաժակ",
			"price": 1000,
		})
	}
	resp := doJSON(t, app, "GET", "/products", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	var ps []struct {
		Images  json.RawMessage `json:"images"`
		Filters json.RawMessage `json:"filters"`
	}
	decodeBody(t, resp, &ps)
	if len(ps) != 2 {
		t.Fatalf("want 2 products, got %d", len(ps))
	}
	for _, p := range ps {
		if string(p.Images) == "null" || len(p.Filters) == 0 {
			t.Fatalf("record not hydrated: images=%s filters=%s", p.Images, p.Filters)
		}
	}
}
