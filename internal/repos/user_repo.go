package repos

import (
	"atelier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `
  id, email, password_hash, role,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *UserRepo) List() ([]domain.User, error) {
	out := []domain.User{}
	err := r.db.Select(&out, `SELECT`+userCols+` FROM users ORDER BY email`)
	return out, err
}

func (r *UserRepo) Get(id int64) (domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT`+userCols+` FROM users WHERE id = ?`, id)
	return u, err
}

func (r *UserRepo) ByEmail(email string) (domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT`+userCols+` FROM users WHERE LOWER(email) = LOWER(?)`, email)
	return u, err
}

func (r *UserRepo) Insert(u *domain.User) error {
	res, err := r.db.Exec(`INSERT INTO users(email,password_hash,role) VALUES(?,?,?)`,
		u.Email, u.Hash, u.Role)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *UserRepo) Update(id int64, set map[string]any) error {
	return execUpdate(r.db, "users", id, set)
}

func (r *UserRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
