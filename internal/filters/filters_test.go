package filters_test

import (
	"reflect"
	"strings"
	"testing"

	"atelier/internal/filters"
)

func TestRoundTripIdempotence(t *testing.T) {
	f := filters.Filters{
		MaterialFromUs: filters.Material{PriceModifier: 500, Help: filters.Text{Ru: "текст"}},
		PhotoEdit:      true,
		ProductSize: []filters.SizeOption{
			{Size: filters.Text{En: "S", Ru: "С", Arm: "Փ"}, PriceModifier: 0},
			{Size: filters.Text{En: "L"}, PriceModifier: 300},
		},
		Model: []filters.SizeOption{{Size: filters.Text{En: "Mug"}}},
	}
	got := filters.Decode(f.Encode())
	if !reflect.DeepEqual(got, f.Normalized()) {
		t.Fatalf("round trip changed the document:\n got %+v\nwant %+v", got, f.Normalized())
	}
}

func TestEncodeOmitsEmptyLists(t *testing.T) {
	f := filters.Filters{ProductSize: []filters.SizeOption{}, PrintSize: nil}
	s := string(f.Encode())
	for _, key := range []string{"productSize", "printSize", "model"} {
		if strings.Contains(s, key) {
			t.Fatalf("empty %s must be omitted, got %s", key, s)
		}
	}
	if !strings.Contains(s, "materialFromUs") || !strings.Contains(s, "photoEdit") {
		t.Fatalf("required keys missing: %s", s)
	}
}

func TestDecodeMalformedBlobFailsClosed(t *testing.T) {
	for _, raw := range []string{"not-json", `"not-json"`, "[1,2]", "42", ""} {
		got := filters.Decode([]byte(raw))
		if !reflect.DeepEqual(got, filters.Default()) {
			t.Fatalf("Decode(%q) = %+v, want defaults", raw, got)
		}
	}
}

func TestDecodeBadFieldsDegradeIndividually(t *testing.T) {
	raw := `{"materialFromUs":"oops","photoEdit":"yes","productSize":[{"size":{"en":"S","ru":"","arm":""},"priceModifier":0}],"model":{"bad":"shape"}}`
	got := filters.Decode([]byte(raw))
	if got.MaterialFromUs != (filters.Material{}) {
		t.Fatalf("bad material must default, got %+v", got.MaterialFromUs)
	}
	if got.PhotoEdit {
		t.Fatal("bad photoEdit must default to false")
	}
	if got.Model != nil {
		t.Fatalf("bad model list must default, got %+v", got.Model)
	}
	if len(got.ProductSize) != 1 || got.ProductSize[0].Size.En != "S" {
		t.Fatalf("valid field lost: %+v", got.ProductSize)
	}
}

func TestDecodeUnwrapsStringWrappedDocument(t *testing.T) {
	raw := `"{\"materialFromUs\":{\"required\":true,\"type\":false,\"priceModifier\":9,\"help\":{\"en\":\"\",\"ru\":\"\",\"arm\":\"\"}},\"photoEdit\":true}"`
	got := filters.Decode([]byte(raw))
	if !got.PhotoEdit {
		t.Fatal("photoEdit lost through string wrapper")
	}
	// Inconsistent required state must come back self-healed.
	if got.MaterialFromUs != (filters.Material{Required: true, Type: true}) {
		t.Fatalf("material not normalized on decode: %+v", got.MaterialFromUs)
	}
}

func TestDecodeNormalizesInconsistentMaterial(t *testing.T) {
	raw := `{"materialFromUs":{"required":true,"type":false,"priceModifier":500,"help":{"en":"","ru":"x","arm":""}},"photoEdit":false}`
	got := filters.Decode([]byte(raw))
	if got.MaterialFromUs != (filters.Material{Required: true, Type: true}) {
		t.Fatalf("want canonical required state, got %+v", got.MaterialFromUs)
	}
}
