package services

import (
	"database/sql"
	"errors"
	"time"

	"atelier/internal/domain"
	"atelier/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	ErrBadToken = errors.New("invalid or expired token")
)

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
}

// Session is what a verified access token asserts about the caller.
type Session struct {
	UserID int64
	Role   string
}

// Login checks the password and issues an HS256 access token with the user
// id in sub and the role as a private claim.
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrBadCreds
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.TTL).Unix(),
	})
	signed, err := tok.SignedString(s.Secret)
	if err != nil {
		return "", nil, err
	}
	return signed, &u, nil
}

// Verify parses and validates a bearer token.
func (s *AuthService) Verify(token string) (Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return Session{}, ErrBadToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrBadToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return Session{}, ErrBadToken
	}
	role, _ := claims["role"].(string)
	return Session{UserID: int64(sub), Role: role}, nil
}
