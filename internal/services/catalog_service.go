package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"atelier/internal/domain"
	"atelier/internal/filters"
	"atelier/internal/repos"
	"atelier/internal/validate"
)

// CatalogService owns categories and products, including canonicalization of
// each product's filter document on every write and fail-closed decoding on
// every read.
type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// CategoryInput carries both create and partial-update payloads; nil means
// "not provided".
type CategoryInput struct {
	Slug    *string `json:"slug"`
	NameEn  *string `json:"nameEn"`
	NameRu  *string `json:"nameRu"`
	NameArm *string `json:"nameArm"`
	Img     *string `json:"img"`
}

// ProductInput mirrors the product create/update payload. Filters is kept
// raw: the document is decoded tolerantly and re-derived into canonical form
// before anything is stored.
type ProductInput struct {
	CategoryID     *int64               `json:"categoryId"`
	NameEn         *string              `json:"nameEn"`
	NameRu         *string              `json:"nameRu"`
	NameArm        *string              `json:"nameArm"`
	DescriptionEn  *string              `json:"descriptionEn"`
	DescriptionRu  *string              `json:"descriptionRu"`
	DescriptionArm *string              `json:"descriptionArm"`
	Price          *float64             `json:"price"`
	Images         *[]filters.ImageLink `json:"images"`
	SliderDescEn   *string              `json:"sliderDescriptionEn"`
	SliderDescRu   *string              `json:"sliderDescriptionRu"`
	SliderDescArm  *string              `json:"sliderDescriptionArm"`
	Filters        json.RawMessage      `json:"filters"`
}

// ---------- Categories ----------

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) GetCategory(id int64) (domain.Category, error) {
	c, err := s.Cats.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

func (s *CatalogService) CreateCategory(in CategoryInput) (domain.Category, error) {
	var c domain.Category
	if in.Slug == nil {
		return c, invalidf("slug is required")
	}
	slug, ok := validate.Slug(*in.Slug)
	if !ok {
		return c, invalidf("slug must be lowercase letters, digits and dashes")
	}
	names, err := requiredTriple("name", in.NameEn, in.NameRu, in.NameArm)
	if err != nil {
		return c, err
	}
	if _, err := s.Cats.BySlug(slug); err == nil {
		return c, ErrConflict
	} else if !errors.Is(err, sql.ErrNoRows) {
		return c, err
	}

	c = domain.Category{Slug: slug, NameEn: names[0], NameRu: names[1], NameArm: names[2]}
	if in.Img != nil {
		c.Img = strings.TrimSpace(*in.Img)
	}
	if err := s.Cats.Insert(&c); err != nil {
		return c, err
	}
	return s.Cats.Get(c.ID)
}

func (s *CatalogService) UpdateCategory(id int64, in CategoryInput) (domain.Category, error) {
	c, err := s.GetCategory(id)
	if err != nil {
		return c, err
	}
	set := map[string]any{}
	if in.Slug != nil {
		slug, ok := validate.Slug(*in.Slug)
		if !ok {
			return c, invalidf("slug must be lowercase letters, digits and dashes")
		}
		if other, err := s.Cats.BySlug(slug); err == nil && other.ID != id {
			return c, ErrConflict
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		set["slug"] = slug
	}
	if err := setName(set, "name_en", in.NameEn); err != nil {
		return c, err
	}
	if err := setName(set, "name_ru", in.NameRu); err != nil {
		return c, err
	}
	if err := setName(set, "name_arm", in.NameArm); err != nil {
		return c, err
	}
	if in.Img != nil {
		set["img"] = strings.TrimSpace(*in.Img)
	}
	if err := s.Cats.Update(id, set); err != nil {
		return c, err
	}
	return s.Cats.Get(id)
}

func (s *CatalogService) DeleteCategory(id int64) error {
	ok, err := s.Cats.Delete(id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return ErrConflict
		}
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ---------- Products ----------

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	ps, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i].Hydrate()
	}
	return ps, nil
}

func (s *CatalogService) ListProductsByCategory(catID int64) ([]domain.Product, error) {
	ps, err := s.Prods.ListByCategory(catID)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i].Hydrate()
	}
	return ps, nil
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}
	p.Hydrate()
	return p, nil
}

func (s *CatalogService) CreateProduct(in ProductInput) (domain.Product, error) {
	var p domain.Product
	if in.CategoryID == nil || *in.CategoryID <= 0 {
		return p, invalidf("categoryId is required")
	}
	if _, err := s.Cats.Get(*in.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, invalidf("category %d does not exist", *in.CategoryID)
		}
		return p, err
	}
	names, err := requiredTriple("name", in.NameEn, in.NameRu, in.NameArm)
	if err != nil {
		return p, err
	}
	if in.Price == nil || *in.Price < 0 {
		return p, invalidf("price must be a non-negative number")
	}

	var images []filters.ImageLink
	if in.Images != nil {
		images = *in.Images
	}
	doc := filters.Decode(in.Filters)
	doc.PhotoEdit = false
	filtersJSON, imagesJSON, err := canonicalize(doc, images)
	if err != nil {
		return p, err
	}

	p = domain.Product{
		CategoryID:  *in.CategoryID,
		NameEn:      names[0],
		NameRu:      names[1],
		NameArm:     names[2],
		Price:       *in.Price,
		ImagesJSON:  imagesJSON,
		FiltersJSON: filtersJSON,
	}
	applyOptional(&p.DescriptionEn, in.DescriptionEn)
	applyOptional(&p.DescriptionRu, in.DescriptionRu)
	applyOptional(&p.DescriptionArm, in.DescriptionArm)
	applyOptional(&p.SliderDescEn, in.SliderDescEn)
	applyOptional(&p.SliderDescRu, in.SliderDescRu)
	applyOptional(&p.SliderDescArm, in.SliderDescArm)

	if err := s.Prods.Insert(&p); err != nil {
		return p, err
	}
	return s.GetProduct(p.ID)
}

func (s *CatalogService) UpdateProduct(id int64, in ProductInput) (domain.Product, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return p, err
	}
	set := map[string]any{}
	if in.CategoryID != nil {
		if _, err := s.Cats.Get(*in.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return p, invalidf("category %d does not exist", *in.CategoryID)
			}
			return p, err
		}
		set["category_id"] = *in.CategoryID
	}
	if err := setName(set, "name_en", in.NameEn); err != nil {
		return p, err
	}
	if err := setName(set, "name_ru", in.NameRu); err != nil {
		return p, err
	}
	if err := setName(set, "name_arm", in.NameArm); err != nil {
		return p, err
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return p, invalidf("price must be a non-negative number")
		}
		set["price"] = *in.Price
	}
	setOptional(set, "description_en", in.DescriptionEn)
	setOptional(set, "description_ru", in.DescriptionRu)
	setOptional(set, "description_arm", in.DescriptionArm)
	setOptional(set, "slider_description_en", in.SliderDescEn)
	setOptional(set, "slider_description_ru", in.SliderDescRu)
	setOptional(set, "slider_description_arm", in.SliderDescArm)

	// The filter document and image list validate against each other, so a
	// change to either re-derives both from the merged state. photoEdit is
	// not editable here and is carried over from the stored document.
	if len(in.Filters) > 0 || in.Images != nil {
		stored := filters.Decode([]byte(p.FiltersJSON))
		doc := stored
		if len(in.Filters) > 0 {
			doc = filters.Decode(in.Filters)
			doc.PhotoEdit = stored.PhotoEdit
		}
		images := p.Images
		if in.Images != nil {
			images = *in.Images
		}
		filtersJSON, imagesJSON, err := canonicalize(doc, images)
		if err != nil {
			return p, err
		}
		set["filters_json"] = filtersJSON
		set["images_json"] = imagesJSON
	}

	if err := s.Prods.Update(id, set); err != nil {
		return p, err
	}
	return s.GetProduct(id)
}

func (s *CatalogService) DeleteProduct(id int64) error {
	ok, err := s.Prods.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// canonicalize runs the document and image list through the form aggregator:
// images are validated against the model list and both come back in the
// canonical shape that gets stored.
func canonicalize(doc filters.Filters, images []filters.ImageLink) (string, string, error) {
	form, err := filters.NewForm(doc, images)
	if err != nil {
		return "", "", invalidf("%v", err)
	}
	canon, links := form.Build()
	if links == nil {
		links = []filters.ImageLink{}
	}
	imagesJSON, err := json.Marshal(links)
	if err != nil {
		return "", "", err
	}
	return string(canon.Encode()), string(imagesJSON), nil
}

func requiredTriple(field string, en, ru, arm *string) ([3]string, error) {
	var out [3]string
	for i, v := range []*string{en, ru, arm} {
		loc := [...]string{"En", "Ru", "Arm"}[i]
		if v == nil {
			return out, invalidf("%s%s is required", field, loc)
		}
		name, ok := validate.Name(*v)
		if !ok {
			return out, invalidf("%s%s is required", field, loc)
		}
		out[i] = name
	}
	return out, nil
}

func setName(set map[string]any, col string, v *string) error {
	if v == nil {
		return nil
	}
	name, ok := validate.Name(*v)
	if !ok {
		return invalidf("%s must not be empty", col)
	}
	set[col] = name
	return nil
}

func setOptional(set map[string]any, col string, v *string) {
	if v != nil {
		set[col] = *v
	}
}

func applyOptional(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
