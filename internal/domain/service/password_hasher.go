// Package service declares the capabilities use cases depend on but do not
// implement: hashing, tokens, artifacts, storage, audit, publishing and error
// reporting.
package service

// PasswordHasher hashes owner and store member passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash; a malformed hash is a mismatch.
	Check(password, hash string) bool
}
