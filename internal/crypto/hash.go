package crypto

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor applied to every stored password hash.
const bcryptCost = 12

// HashPassword hashes a password with bcrypt. The salt is embedded in the
// returned hash string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether a password matches the stored bcrypt hash.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
