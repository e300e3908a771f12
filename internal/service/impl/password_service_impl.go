package impl

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceImpl hashes with bcrypt. The digest is self-describing
// (algorithm, cost, and salt are embedded), so verification needs no
// stored parameters beside the digest itself.
type PasswordServiceImpl struct {
	cost int
}

func NewPasswordServiceBcrypt(cost int) *PasswordServiceImpl {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(digest), nil
}

// Verify collapses every failure mode into false: wrong password, malformed
// digest, foreign algorithm. bcrypt's comparison is constant-effort for well
// formed digests, so the caller gets no oracle for which case occurred.
func (p *PasswordServiceImpl) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
