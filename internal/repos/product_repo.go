package repos

import (
	"atelier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name_en, name_ru, name_arm,
  description_en, description_ru, description_arm,
  price, slider_description_en, slider_description_ru, slider_description_arm,
  images_json, filters_json,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products ORDER BY created_at DESC, id DESC`)
	return out, err
}

func (r *ProductRepo) ListByCategory(catID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products WHERE category_id = ? ORDER BY created_at DESC, id DESC`, catID)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Insert(p *domain.Product) error {
	res, err := r.db.Exec(`
		INSERT INTO products(
			category_id, name_en, name_ru, name_arm,
			description_en, description_ru, description_arm,
			price, slider_description_en, slider_description_ru, slider_description_arm,
			images_json, filters_json
		) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.CategoryID, p.NameEn, p.NameRu, p.NameArm,
		p.DescriptionEn, p.DescriptionRu, p.DescriptionArm,
		p.Price, p.SliderDescEn, p.SliderDescRu, p.SliderDescArm,
		p.ImagesJSON, p.FiltersJSON)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *ProductRepo) Update(id int64, set map[string]any) error {
	return execUpdate(r.db, "products", id, set)
}

func (r *ProductRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
