package dto

import (
	"fmt"
	"strings"
	"time"

	"user-directory/internal/domain"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	if r.Name == "" || len(r.Name) > 100 {
		return fmt.Errorf("%w: name must be 1-100 characters", domain.ErrValidation)
	}
	if !looksLikeEmail(r.Email) {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(r.Password) < 6 || len(r.Password) > 100 {
		return fmt.Errorf("%w: password must be 6-100 characters", domain.ErrValidation)
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if !looksLikeEmail(r.Email) {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	return nil
}

// AccountView is the public projection of an Account; it never carries the hash.
type AccountView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAccountView(a *domain.Account) AccountView {
	return AccountView{ID: a.ID, Name: a.Name, Email: a.Email, CreatedAt: a.CreatedAt}
}

// AuthResult is the two-phase outcome of register/login. TokenIssued is false
// when the account was persisted but token minting failed; callers should then
// direct the user to log in instead of retrying registration.
type AuthResult struct {
	Token       string      `json:"token"`
	TokenIssued bool        `json:"token_issued"`
	User        AccountView `json:"user"`
}

func looksLikeEmail(s string) bool {
	at := strings.IndexRune(s, '@')
	return at > 0 && at < len(s)-1 && len(s) <= 254
}
