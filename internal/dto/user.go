package dto

import (
	"fmt"
	"time"

	"user-directory/internal/domain"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name     string          `json:"name"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Phone    *string         `json:"phone,omitempty"`
	Website  *string         `json:"website,omitempty"`
	Address  *AddressRequest `json:"address,omitempty"`
	Company  *CompanyRequest `json:"company,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	if r.Name == "" || len(r.Name) > 100 {
		return fmt.Errorf("%w: name must be 1-100 characters", domain.ErrValidation)
	}
	if r.Username == "" || len(r.Username) > 50 {
		return fmt.Errorf("%w: username must be 1-50 characters", domain.ErrValidation)
	}
	if !looksLikeEmail(r.Email) {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if r.Address != nil {
		if err := r.Address.Validate(); err != nil {
			return err
		}
	}
	if r.Company != nil {
		if err := r.Company.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateUserRequest carries partial-update semantics: nil scalar fields leave
// the stored value unchanged. A present Address/Company replaces the child row;
// RemoveAddress/RemoveCompany are explicit tombstones so "omitted" and "delete"
// stay distinguishable.
type UpdateUserRequest struct {
	Name          *string         `json:"name,omitempty"`
	Username      *string         `json:"username,omitempty"`
	Email         *string         `json:"email,omitempty"`
	Phone         *string         `json:"phone,omitempty"`
	Website       *string         `json:"website,omitempty"`
	Address       *AddressRequest `json:"address,omitempty"`
	RemoveAddress bool            `json:"remove_address,omitempty"`
	Company       *CompanyRequest `json:"company,omitempty"`
	RemoveCompany bool            `json:"remove_company,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	if r.Name != nil && (*r.Name == "" || len(*r.Name) > 100) {
		return fmt.Errorf("%w: name must be 1-100 characters", domain.ErrValidation)
	}
	if r.Username != nil && (*r.Username == "" || len(*r.Username) > 50) {
		return fmt.Errorf("%w: username must be 1-50 characters", domain.ErrValidation)
	}
	if r.Email != nil && !looksLikeEmail(*r.Email) {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if r.Address != nil && r.RemoveAddress {
		return fmt.Errorf("%w: address and remove_address are mutually exclusive", domain.ErrValidation)
	}
	if r.Company != nil && r.RemoveCompany {
		return fmt.Errorf("%w: company and remove_company are mutually exclusive", domain.ErrValidation)
	}
	if r.Address != nil {
		if err := r.Address.Validate(); err != nil {
			return err
		}
	}
	if r.Company != nil {
		if err := r.Company.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type AddressRequest struct {
	Street  string      `json:"street"`
	Suite   *string     `json:"suite,omitempty"`
	City    string      `json:"city"`
	Zipcode string      `json:"zipcode"`
	Geo     *GeoRequest `json:"geo,omitempty"`
}

func (r AddressRequest) Validate() error {
	if r.Street == "" || len(r.Street) > 100 {
		return fmt.Errorf("%w: street must be 1-100 characters", domain.ErrValidation)
	}
	if r.City == "" || len(r.City) > 50 {
		return fmt.Errorf("%w: city must be 1-50 characters", domain.ErrValidation)
	}
	if r.Zipcode == "" || len(r.Zipcode) > 20 {
		return fmt.Errorf("%w: zipcode must be 1-20 characters", domain.ErrValidation)
	}
	if r.Geo != nil {
		if err := r.Geo.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type GeoRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (r GeoRequest) Validate() error {
	if r.Lat < -90 || r.Lat > 90 {
		return fmt.Errorf("%w: lat must be within [-90, 90]", domain.ErrValidation)
	}
	if r.Lng < -180 || r.Lng > 180 {
		return fmt.Errorf("%w: lng must be within [-180, 180]", domain.ErrValidation)
	}
	return nil
}

type CompanyRequest struct {
	Name        string  `json:"name"`
	CatchPhrase *string `json:"catch_phrase,omitempty"`
	BS          *string `json:"bs,omitempty"`
}

func (r CompanyRequest) Validate() error {
	if r.Name == "" || len(r.Name) > 100 {
		return fmt.Errorf("%w: company name must be 1-100 characters", domain.ErrValidation)
	}
	return nil
}

type UserResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	Phone     *string          `json:"phone,omitempty"`
	Website   *string          `json:"website,omitempty"`
	Address   *AddressResponse `json:"address,omitempty"`
	Company   *CompanyResponse `json:"company,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type AddressResponse struct {
	Street  string      `json:"street"`
	Suite   *string     `json:"suite,omitempty"`
	City    string      `json:"city"`
	Zipcode string      `json:"zipcode"`
	Geo     *domain.Geo `json:"geo,omitempty"`
}

type CompanyResponse struct {
	Name        string  `json:"name"`
	CatchPhrase *string `json:"catch_phrase,omitempty"`
	BS          *string `json:"bs,omitempty"`
}

func NewUserResponse(p *domain.UserProfile, addr *domain.Address, comp *domain.Company) *UserResponse {
	out := &UserResponse{
		ID:        p.ID,
		Name:      p.Name,
		Username:  p.Username,
		Email:     p.Email,
		Phone:     p.Phone,
		Website:   p.Website,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if addr != nil {
		out.Address = &AddressResponse{
			Street:  addr.Street,
			Suite:   addr.Suite,
			City:    addr.City,
			Zipcode: addr.Zipcode,
			Geo:     addr.Geo(),
		}
	}
	if comp != nil {
		out.Company = &CompanyResponse{
			Name:        comp.Name,
			CatchPhrase: comp.CatchPhrase,
			BS:          comp.BS,
		}
	}
	return out
}
