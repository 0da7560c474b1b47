// Package utils holds small shared helpers.
package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plain password using bcrypt with the default cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash. bcrypt's
// comparator is constant time; plaintext equality is never used.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
