package tokenhasher

import (
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes and checks the API access token. The secret is appended before hashing.
type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token+h.secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *Bcrypt) ValidateToken(token string, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token+h.secret))
	return err == nil
}
