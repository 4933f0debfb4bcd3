package repos

import (
	"atelier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type WorkRepo struct{ db *sqlx.DB }

func NewWorkRepo(db *sqlx.DB) *WorkRepo { return &WorkRepo{db: db} }

const workCols = `
  id, category_id, title_en, title_ru, title_arm,
  description_en, description_ru, description_arm, photo,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *WorkRepo) List() ([]domain.Work, error) {
	out := []domain.Work{}
	err := r.db.Select(&out, `SELECT`+workCols+` FROM works ORDER BY created_at DESC, id DESC`)
	return out, err
}

func (r *WorkRepo) Get(id int64) (domain.Work, error) {
	var w domain.Work
	err := r.db.Get(&w, `SELECT`+workCols+` FROM works WHERE id = ?`, id)
	return w, err
}

func (r *WorkRepo) Insert(w *domain.Work) error {
	res, err := r.db.Exec(`
		INSERT INTO works(
			category_id, title_en, title_ru, title_arm,
			description_en, description_ru, description_arm, photo
		) VALUES(?,?,?,?,?,?,?,?)`,
		w.CategoryID, w.TitleEn, w.TitleRu, w.TitleArm,
		w.DescriptionEn, w.DescriptionRu, w.DescriptionArm, w.Photo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = id
	return nil
}

func (r *WorkRepo) Update(id int64, set map[string]any) error {
	return execUpdate(r.db, "works", id, set)
}

func (r *WorkRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM works WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
