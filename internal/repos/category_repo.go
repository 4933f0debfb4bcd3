package repos

import (
	"atelier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `
  id, slug, name_en, name_ru, name_arm, img,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `SELECT`+categoryCols+` FROM categories ORDER BY name_en`)
	return out, err
}

func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT`+categoryCols+` FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) BySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT`+categoryCols+` FROM categories WHERE LOWER(slug) = LOWER(?)`, slug)
	return c, err
}

func (r *CategoryRepo) Insert(c *domain.Category) error {
	res, err := r.db.Exec(`
		INSERT INTO categories(slug, name_en, name_ru, name_arm, img)
		VALUES(?,?,?,?,?)`,
		c.Slug, c.NameEn, c.NameRu, c.NameArm, c.Img)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *CategoryRepo) Update(id int64, set map[string]any) error {
	return execUpdate(r.db, "categories", id, set)
}

func (r *CategoryRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
