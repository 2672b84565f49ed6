package helpers

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var decoyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("specimen-catalog-decoy"), bcrypt.DefaultCost)
	return h
})

// HashPassword hashes an account password with bcrypt.
func HashPassword(plain string) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", bcrypt.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// SpendPasswordCompare runs one comparison against a fixed hash. Login calls
// it for unknown emails so they take as long as a wrong password.
func SpendPasswordCompare(plain string) {
	_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(plain))
}
