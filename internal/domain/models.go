package domain

import (
	"encoding/json"

	"atelier/internal/filters"
)

type Category struct {
	ID        int64  `db:"id" json:"id"`
	Slug      string `db:"slug" json:"slug"`
	NameEn    string `db:"name_en" json:"nameEn"`
	NameRu    string `db:"name_ru" json:"nameRu"`
	NameArm   string `db:"name_arm" json:"nameArm"`
	Img       string `db:"img" json:"img,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type Product struct {
	ID             int64   `db:"id" json:"id"`
	CategoryID     int64   `db:"category_id" json:"categoryId"`
	NameEn         string  `db:"name_en" json:"nameEn"`
	NameRu         string  `db:"name_ru" json:"nameRu"`
	NameArm        string  `db:"name_arm" json:"nameArm"`
	DescriptionEn  string  `db:"description_en" json:"descriptionEn,omitempty"`
	DescriptionRu  string  `db:"description_ru" json:"descriptionRu,omitempty"`
	DescriptionArm string  `db:"description_arm" json:"descriptionArm,omitempty"`
	Price          float64 `db:"price" json:"price"`
	SliderDescEn   string  `db:"slider_description_en" json:"sliderDescriptionEn,omitempty"`
	SliderDescRu   string  `db:"slider_description_ru" json:"sliderDescriptionRu,omitempty"`
	SliderDescArm  string  `db:"slider_description_arm" json:"sliderDescriptionArm,omitempty"`
	ImagesJSON     string  `db:"images_json" json:"-"`
	FiltersJSON    string  `db:"filters_json" json:"-"`
	CreatedAt      string  `db:"created_at" json:"createdAt"`
	UpdatedAt      string  `db:"updated_at" json:"updatedAt"`

	// Hydrated from the JSON columns after load.
	Images  []filters.ImageLink `db:"-" json:"images"`
	Filters json.RawMessage     `db:"-" json:"filters"`
}

// Hydrate fills the wire-facing Images and Filters fields from the stored
// JSON columns. Malformed stored data degrades to defaults, it never blocks
// a read.
func (p *Product) Hydrate() {
	p.Images = nil
	if p.ImagesJSON != "" {
		_ = json.Unmarshal([]byte(p.ImagesJSON), &p.Images)
	}
	if p.Images == nil {
		p.Images = []filters.ImageLink{}
	}
	p.Filters = filters.Decode([]byte(p.FiltersJSON)).Encode()
}

type Work struct {
	ID             int64  `db:"id" json:"id"`
	CategoryID     int64  `db:"category_id" json:"categoryId"`
	TitleEn        string `db:"title_en" json:"titleEn"`
	TitleRu        string `db:"title_ru" json:"titleRu"`
	TitleArm       string `db:"title_arm" json:"titleArm"`
	DescriptionEn  string `db:"description_en" json:"descriptionEn,omitempty"`
	DescriptionRu  string `db:"description_ru" json:"descriptionRu,omitempty"`
	DescriptionArm string `db:"description_arm" json:"descriptionArm,omitempty"`
	Photo          string `db:"photo" json:"photo"`
	CreatedAt      string `db:"created_at" json:"createdAt"`
	UpdatedAt      string `db:"updated_at" json:"updatedAt"`
}
