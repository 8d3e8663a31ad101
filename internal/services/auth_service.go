package services

import (
	"database/sql"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements register-or-login: one endpoint that creates the
// account on first sight of an email and logs in afterwards, issuing an
// HS256 bearer token either way.
type AuthService struct {
	UserRepo repositories.UserRepository
	Secret   []byte
	TokenTTL time.Duration
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	PhotoURL string `json:"photoURL"`
	Password string `json:"password" binding:"required"`
}

func (s AuthService) RegisterOrLogin(req RegisterRequest) (models.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, "", domain.ValidationError{Field: "email", Msg: "invalid email"}
	}
	if req.Password == "" {
		return models.User{}, "", domain.ValidationError{Field: "password", Msg: "must not be empty"}
	}

	user, hash, err := s.UserRepo.GetByEmail(email)
	switch {
	case err == sql.ErrNoRows:
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = email
		}
		h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, "", domain.InternalError{Err: err}
		}
		id, err := s.UserRepo.Create(name, email, req.PhotoURL, string(h), domain.RoleUser)
		if err != nil {
			return models.User{}, "", domain.InternalError{Err: err}
		}
		user, err = s.UserRepo.GetByID(id)
		if err != nil {
			return models.User{}, "", domain.InternalError{Err: err}
		}
	case err != nil:
		return models.User{}, "", domain.InternalError{Err: err}
	default:
		// A token is only issued against a verified stored credential.
		// An account without one (never possible through this endpoint)
		// cannot be logged into at all; skipping the check here would
		// let anyone holding just the email in.
		if hash == "" {
			return models.User{}, "", domain.UnauthorizedError{Msg: "password login is not set up for this account"}
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			return models.User{}, "", domain.UnauthorizedError{Msg: "wrong email or password"}
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	return user, token, nil
}

func (s AuthService) issueToken(u models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    string(u.Role),
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(s.Secret)
}

// UpdateProfile applies a PATCH-style profile change for the caller.
func (s AuthService) UpdateProfile(userID int64, upd models.ProfileUpdate) (models.User, error) {
	if userID <= 0 {
		return models.User{}, domain.ValidationError{Field: "user_id", Msg: "invalid id"}
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return models.User{}, domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if err := s.UserRepo.UpdateProfile(userID, upd); err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}
