package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashOTPCode hashes a one-time code using bcrypt before it is cached, so a
// compromised cache never exposes usable codes.
func HashOTPCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckOTPCodeHash compares a plaintext one-time code with its bcrypt hash.
func CheckOTPCodeHash(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
