package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-directory/internal/domain"
	"user-directory/internal/dto"
	"user-directory/internal/store"

	"github.com/google/uuid"
)

// UserServiceImpl assembles the composite user entity from the three
// normalized tables and decomposes it again on create/update.
type UserServiceImpl struct {
	Store *store.Store
}

func NewUserServiceImpl(st *store.Store) *UserServiceImpl {
	return &UserServiceImpl{Store: st}
}

func (u *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	profile, err := u.Store.Profiles().GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	addr, err := u.Store.Addresses().GetByUserID(ctx, id)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return nil, mapStoreError(err)
	}
	comp, err := u.Store.Companies().GetByUserID(ctx, id)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return nil, mapStoreError(err)
	}

	return dto.NewUserResponse(profile, addr, comp), nil
}

// List folds the left-join rows into one aggregate per profile id. Under the
// current schema each profile joins to at most one address and one company,
// so the fold only collapses exact duplicates. Order is unspecified.
func (u *UserServiceImpl) List(ctx context.Context) ([]*dto.UserResponse, error) {
	rows, err := u.Store.Profiles().ListJoined(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	byID := make(map[uuid.UUID]*dto.UserResponse, len(rows))
	out := make([]*dto.UserResponse, 0, len(rows))
	for _, row := range rows {
		if _, seen := byID[row.ProfileID]; seen {
			continue
		}
		resp := foldRow(row)
		byID[row.ProfileID] = resp
		out = append(out, resp)
	}
	return out, nil
}

func foldRow(row store.AggregateRow) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        row.ProfileID,
		Name:      row.Name,
		Username:  row.Username,
		Email:     row.Email,
		Phone:     row.Phone,
		Website:   row.Website,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.AddressID != nil {
		addr := &dto.AddressResponse{
			Suite: row.Suite,
		}
		if row.Street != nil {
			addr.Street = *row.Street
		}
		if row.City != nil {
			addr.City = *row.City
		}
		if row.Zipcode != nil {
			addr.Zipcode = *row.Zipcode
		}
		if row.Lat != nil && row.Lng != nil {
			addr.Geo = &domain.Geo{Lat: *row.Lat, Lng: *row.Lng}
		}
		resp.Address = addr
	}
	if row.CompanyID != nil {
		comp := &dto.CompanyResponse{
			CatchPhrase: row.CompCatch,
			BS:          row.CompBS,
		}
		if row.CompName != nil {
			comp.Name = *row.CompName
		}
		resp.Company = comp
	}
	return resp
}

// Create writes the profile and its optional children in one transaction, so
// a failed child insert never leaves a partial composite behind. The response
// is re-read through Get for the authoritative view.
func (u *UserServiceImpl) Create(ctx context.Context, r dto.CreateUserRequest) (*dto.UserResponse, error) {
	now := time.Now().UTC()
	profile := &domain.UserProfile{
		ID:        uuid.New(),
		Name:      r.Name,
		Username:  r.Username,
		Email:     r.Email,
		Phone:     r.Phone,
		Website:   r.Website,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := u.Store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Profiles().Create(ctx, profile); err != nil {
			return err
		}
		if r.Address != nil {
			if err := tx.Addresses().Upsert(ctx, addressFromRequest(profile.ID, r.Address)); err != nil {
				return err
			}
		}
		if r.Company != nil {
			if err := tx.Companies().Upsert(ctx, companyFromRequest(profile.ID, r.Company)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	return u.Get(ctx, profile.ID)
}

// Update overwrites only the scalar fields present in the request; omitted
// fields keep their stored values. Children follow upsert semantics, with
// explicit tombstones for removal. Everything runs in one transaction.
func (u *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, r dto.UpdateUserRequest) (*dto.UserResponse, error) {
	err := u.Store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Profiles().GetByID(ctx, id); err != nil {
			return err
		}

		cols := map[string]any{}
		if r.Name != nil {
			cols["name"] = *r.Name
		}
		if r.Username != nil {
			cols["username"] = *r.Username
		}
		if r.Email != nil {
			cols["email"] = *r.Email
		}
		if r.Phone != nil {
			cols["phone"] = *r.Phone
		}
		if r.Website != nil {
			cols["website"] = *r.Website
		}
		if err := tx.Profiles().UpdateColumns(ctx, id, cols); err != nil {
			return err
		}

		switch {
		case r.RemoveAddress:
			if err := tx.Addresses().DeleteByUserID(ctx, id); err != nil {
				return err
			}
		case r.Address != nil:
			if err := tx.Addresses().Upsert(ctx, addressFromRequest(id, r.Address)); err != nil {
				return err
			}
		}

		switch {
		case r.RemoveCompany:
			if err := tx.Companies().DeleteByUserID(ctx, id); err != nil {
				return err
			}
		case r.Company != nil:
			if err := tx.Companies().Upsert(ctx, companyFromRequest(id, r.Company)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	return u.Get(ctx, id)
}

// Delete removes the profile and cascades over both children in one
// transaction. A missing profile is reported, not swallowed, so callers can
// tell "never existed" from "removed".
func (u *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := u.Store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Addresses().DeleteByUserID(ctx, id); err != nil {
			return err
		}
		if err := tx.Companies().DeleteByUserID(ctx, id); err != nil {
			return err
		}
		return tx.Profiles().Delete(ctx, id)
	})
	return mapStoreError(err)
}

func addressFromRequest(userID uuid.UUID, r *dto.AddressRequest) *domain.Address {
	addr := &domain.Address{
		ID:      uuid.New(),
		UserID:  userID,
		Street:  r.Street,
		Suite:   r.Suite,
		City:    r.City,
		Zipcode: r.Zipcode,
	}
	if r.Geo != nil {
		lat, lng := r.Geo.Lat, r.Geo.Lng
		addr.Lat, addr.Lng = &lat, &lng
	}
	return addr
}

func companyFromRequest(userID uuid.UUID, r *dto.CompanyRequest) *domain.Company {
	return &domain.Company{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        r.Name,
		CatchPhrase: r.CatchPhrase,
		BS:          r.BS,
	}
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, domain.ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
}
