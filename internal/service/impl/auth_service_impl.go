package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"user-directory/internal/domain"
	"user-directory/internal/dto"
	"user-directory/internal/observability/metrics"
	obsmw "user-directory/internal/observability/middleware"
	"user-directory/internal/service"
	"user-directory/internal/store"

	"github.com/google/uuid"
)

type AuthServiceImpl struct {
	Store     dataStore
	Passwords service.PasswordService
	Tokens    service.TokenService
}

func NewAuthServiceImpl(st *store.Store, passwords service.PasswordService, tokens service.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		Store:     gormStoreAdapter{store: st},
		Passwords: passwords,
		Tokens:    tokens,
	}
}

type dataStore interface {
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
}

type storeTx interface {
	Accounts() accountStore
}

type accountStore interface {
	Create(ctx context.Context, acct *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	if g.store == nil {
		return errors.New("nil store")
	}
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormTxAdapter{tx: tx})
	})
}

type gormTxAdapter struct {
	tx *store.Store
}

func (g gormTxAdapter) Accounts() accountStore { return g.tx.Accounts() }

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (*dto.AuthResult, error) {
	result := "failure"
	defer func() {
		metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc()
	}()

	if r.Email == "" || r.Password == "" {
		return nil, ErrEmptyCredential
	}

	var acct *domain.Account
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		// Fast-path duplicate check; the unique index on email stays the
		// authoritative guard for the race window.
		_, err := tx.Accounts().GetByEmail(ctx, r.Email)
		if err == nil {
			return domain.ErrAccountExists
		}
		if !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("%w: account lookup: %v", domain.ErrPersistence, err)
		}

		digest, err := a.Passwords.Hash(r.Password)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrHashingFailed, err)
		}

		now := time.Now().UTC()
		acct = &domain.Account{
			ID:           uuid.New(),
			Name:         r.Name,
			Email:        r.Email,
			PasswordHash: digest,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Accounts().Create(ctx, acct); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return domain.ErrAccountExists
			}
			return fmt.Errorf("%w: account insert: %v", domain.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The account row is committed at this point. A token failure is not
	// rolled back: the result says so and the caller redirects to login.
	token, err := a.Tokens.Issue(ctx, acct)
	if err != nil {
		slog.Warn("registration committed but token issuance failed",
			"account_id", acct.ID,
			"error", err,
			"request_id", obsmw.RequestIDFromContext(ctx),
		)
		result = "success_no_token"
		return &dto.AuthResult{TokenIssued: false, User: dto.NewAccountView(acct)}, nil
	}

	result = "success"
	return &dto.AuthResult{Token: token, TokenIssued: true, User: dto.NewAccountView(acct)}, nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*dto.AuthResult, error) {
	result := "failure"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues(result).Inc()
	}()

	if r.Email == "" || r.Password == "" {
		return nil, ErrEmptyCredential
	}

	var acct *domain.Account
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		found, err := tx.Accounts().GetByEmail(ctx, r.Email)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				// Same failure as a wrong password: no existence oracle.
				return domain.ErrInvalidCredentials
			}
			return fmt.Errorf("%w: account lookup: %v", domain.ErrPersistence, err)
		}
		if !a.Passwords.Verify(r.Password, found.PasswordHash) {
			return domain.ErrInvalidCredentials
		}
		acct = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := a.Tokens.Issue(ctx, acct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenIssuance, err)
	}

	slog.Info("login succeeded",
		"account_id", acct.ID,
		"request_id", obsmw.RequestIDFromContext(ctx),
	)
	result = "success"
	return &dto.AuthResult{Token: token, TokenIssued: true, User: dto.NewAccountView(acct)}, nil
}
