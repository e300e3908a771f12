package impl

import (
	"errors"
	"fmt"

	"user-directory/internal/domain"
)

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrEmptyCredential = fmt.Errorf("%w: empty credential(s)", domain.ErrValidation)
)
