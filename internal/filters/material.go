package filters

import "strconv"

// Material is the "material provided by us" block. When Required is set the
// remaining fields are not independently meaningful: type is forced true, the
// price modifier is zero and the help text is empty.
type Material struct {
	Required      bool    `json:"required"`
	Type          bool    `json:"type"`
	PriceModifier float64 `json:"priceModifier"`
	Help          Text    `json:"help"`
}

// Normalize returns the canonical form of the value. Any value with Required
// set collapses to the single legal Required state; optional values pass
// through untouched. Applied to every incoming value, not just on toggle.
func (m Material) Normalize() Material {
	if m.Required {
		return Material{Required: true, Type: true}
	}
	return m
}

// SetRequired switches between the Required and Optional states. Entering
// Required discards any previously entered optional-path data. Leaving it
// keeps whatever the fields currently hold (Type retains its last value).
func (m *Material) SetRequired(v bool) {
	m.Required = v
	*m = m.Normalize()
}

// SetPriceModifier updates the optional-path price modifier from raw form
// input, coercing non-numeric input to 0. Ignored while Required.
func (m *Material) SetPriceModifier(raw string) {
	if m.Required {
		return
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		n = 0
	}
	m.PriceModifier = n
}

// SetHelp updates one locale of the optional-path help text. Ignored while
// Required.
func (m *Material) SetHelp(loc Locale, v string) {
	if m.Required {
		return
	}
	m.Help.Set(loc, v)
}
