package domain

import "github.com/google/uuid"

type AccountID = uuid.UUID
type ProfileID = uuid.UUID
type AddressID = uuid.UUID
type CompanyID = uuid.UUID
