// Package filters implements the product filter document: localized
// size/price option lists, the material sourcing block and image-to-model
// associations, plus the editors that admin forms drive to build it.
//
// The wire format is a sparse JSON object embedded in the product record's
// filters field: list keys (productSize, printSize, model) are present only
// when non-empty, and omission means empty.
package filters

import (
	"bytes"
	"encoding/json"
)

// Locale names one of the three catalog languages.
type Locale string

const (
	EN  Locale = "en"
	RU  Locale = "ru"
	ARM Locale = "arm"
)

// Text is a localized string triple. All three keys are always serialized,
// empty values included.
type Text struct {
	En  string `json:"en"`
	Ru  string `json:"ru"`
	Arm string `json:"arm"`
}

func (t Text) Get(loc Locale) string {
	switch loc {
	case RU:
		return t.Ru
	case ARM:
		return t.Arm
	default:
		return t.En
	}
}

func (t *Text) Set(loc Locale, v string) {
	switch loc {
	case RU:
		t.Ru = v
	case ARM:
		t.Arm = v
	default:
		t.En = v
	}
}

// SizeOption is one entry of a named option list (product size, print size,
// model): a localized label plus a price modifier in minor units.
type SizeOption struct {
	Size          Text    `json:"size"`
	PriceModifier float64 `json:"priceModifier"`
}

// ImageLink associates an uploaded image with one or more options of the
// model list, by position in that list.
type ImageLink struct {
	URL      string `json:"url"`
	ModelIDs []int  `json:"modelIds"`
}

// Filters is the complete filter document stored with a product.
type Filters struct {
	MaterialFromUs Material     `json:"materialFromUs"`
	PhotoEdit      bool         `json:"photoEdit"`
	ProductSize    []SizeOption `json:"productSize,omitempty"`
	PrintSize      []SizeOption `json:"printSize,omitempty"`
	Model          []SizeOption `json:"model,omitempty"`
}

// Default returns the document every product starts from: optional material
// sourcing, no photo editing, no option lists.
func Default() Filters {
	return Filters{MaterialFromUs: Material{}}
}

// Normalized returns a canonical copy: material sourcing self-healed and
// empty option lists nil'd out so they are omitted on encode.
func (f Filters) Normalized() Filters {
	f.MaterialFromUs = f.MaterialFromUs.Normalize()
	if len(f.ProductSize) == 0 {
		f.ProductSize = nil
	}
	if len(f.PrintSize) == 0 {
		f.PrintSize = nil
	}
	if len(f.Model) == 0 {
		f.Model = nil
	}
	return f
}

// Encode serializes the canonical form of the document.
func (f Filters) Encode() []byte {
	b, err := json.Marshal(f.Normalized())
	if err != nil {
		// Marshal of a plain struct cannot fail; keep the screen usable anyway.
		return []byte(`{}`)
	}
	return b
}

// Decode parses a stored filter blob. It never fails: a blob that is not a
// JSON object, or any field of the wrong shape, degrades to the default for
// that field so an edit screen can always load. A document wrapped in a JSON
// string (the legacy form-field shape) is unwrapped first.
func Decode(raw []byte) Filters {
	f := Default()
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return f
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return f
		}
		return Decode([]byte(inner))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return f
	}
	if b, ok := fields["materialFromUs"]; ok {
		var m Material
		if err := json.Unmarshal(b, &m); err == nil {
			f.MaterialFromUs = m.Normalize()
		}
	}
	if b, ok := fields["photoEdit"]; ok {
		var v bool
		if err := json.Unmarshal(b, &v); err == nil {
			f.PhotoEdit = v
		}
	}
	f.ProductSize = decodeOptions(fields["productSize"])
	f.PrintSize = decodeOptions(fields["printSize"])
	f.Model = decodeOptions(fields["model"])
	return f.Normalized()
}

func decodeOptions(b json.RawMessage) []SizeOption {
	if len(b) == 0 {
		return nil
	}
	var opts []SizeOption
	if err := json.Unmarshal(b, &opts); err != nil {
		return nil
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}
