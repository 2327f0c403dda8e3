package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts credential hashing so tests can swap bcrypt out.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher hashes applicant passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher with the given cost. Costs below the
// bcrypt minimum fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives the stored form of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether password matches the stored hash.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
