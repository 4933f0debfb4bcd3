package filters

// Form aggregates the three option lists, the material sourcing block and
// the image associations of one product form. It is rebuilt from the stored
// document on edit-load and produces the canonical document plus the image
// list on every recompute, the same object the form submits.
type Form struct {
	Material  Material
	PhotoEdit bool

	ProductSize *SizeList
	PrintSize   *SizeList
	Model       *SizeList
	Images      *ImageSet
}

// NewForm fans a decoded document and the product's image list out into the
// editors. Image links are validated against the document's model list; an
// invalid link is the one error a form cannot absorb.
func NewForm(doc Filters, images []ImageLink) (*Form, error) {
	f := &Form{
		Material:    doc.MaterialFromUs.Normalize(),
		PhotoEdit:   doc.PhotoEdit,
		ProductSize: NewSizeList(doc.ProductSize),
		PrintSize:   NewSizeList(doc.PrintSize),
		Model:       NewSizeList(doc.Model),
	}
	set, err := NewImageSet(f.Model, images)
	if err != nil {
		return nil, err
	}
	f.Images = set
	return f, nil
}

// Build recomputes the canonical filter document and image list from the
// editors' current state. Untouched lists stay omitted; the material block
// is re-normalized rather than trusting whatever the editors were last set
// to.
func (f *Form) Build() (Filters, []ImageLink) {
	doc := Filters{
		MaterialFromUs: f.Material.Normalize(),
		PhotoEdit:      f.PhotoEdit,
		ProductSize:    f.ProductSize.Options(),
		PrintSize:      f.PrintSize.Options(),
		Model:          f.Model.Options(),
	}
	return doc.Normalized(), f.Images.Links()
}
