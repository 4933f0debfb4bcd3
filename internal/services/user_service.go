package services

import (
	"database/sql"
	"errors"

	"atelier/internal/domain"
	"atelier/internal/repos"
	"atelier/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService { return &UserService{Users: users} }

// UserInput carries create and partial-update payloads. Password is
// write-only: it is hashed on the way in and never serialized back out.
type UserInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (s *UserService) List() ([]domain.User, error) { return s.Users.List() }

func (s *UserService) Get(id int64) (domain.User, error) {
	u, err := s.Users.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func (s *UserService) Create(in UserInput) (domain.User, error) {
	var u domain.User
	if in.Email == nil {
		return u, invalidf("email is required")
	}
	email, ok := validate.Email(*in.Email)
	if !ok {
		return u, invalidf("email is not valid")
	}
	if in.Password == nil || !validate.Password(*in.Password) {
		return u, invalidf("password must be at least 8 characters")
	}
	role := "MANAGER"
	if in.Role != nil {
		if role, ok = validate.Role(*in.Role); !ok {
			return u, invalidf("role must be ADMIN or MANAGER")
		}
	}
	if _, err := s.Users.ByEmail(email); err == nil {
		return u, ErrConflict
	} else if !errors.Is(err, sql.ErrNoRows) {
		return u, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), 12)
	if err != nil {
		return u, err
	}
	u = domain.User{Email: email, Hash: string(hash), Role: role}
	if err := s.Users.Insert(&u); err != nil {
		return u, err
	}
	return s.Users.Get(u.ID)
}

func (s *UserService) Update(id int64, in UserInput) (domain.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return u, err
	}
	set := map[string]any{}
	if in.Email != nil {
		email, ok := validate.Email(*in.Email)
		if !ok {
			return u, invalidf("email is not valid")
		}
		if other, err := s.Users.ByEmail(email); err == nil && other.ID != id {
			return u, ErrConflict
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return u, err
		}
		set["email"] = email
	}
	if in.Password != nil {
		if !validate.Password(*in.Password) {
			return u, invalidf("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), 12)
		if err != nil {
			return u, err
		}
		set["password_hash"] = string(hash)
	}
	if in.Role != nil {
		role, ok := validate.Role(*in.Role)
		if !ok {
			return u, invalidf("role must be ADMIN or MANAGER")
		}
		set["role"] = role
	}
	if err := s.Users.Update(id, set); err != nil {
		return u, err
	}
	return s.Users.Get(id)
}

func (s *UserService) Delete(id int64) error {
	ok, err := s.Users.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
