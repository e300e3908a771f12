package service

type PasswordService interface {
	// Hash produces a self-describing salted digest; two calls with the same
	// input do not produce identical output.
	Hash(password string) (string, error)
	// Verify reports whether password matches digest. Mismatches and malformed
	// digests both return false, with no distinguishing error or timing signal.
	Verify(password, digest string) bool
}
