package mocks

import "errors"

const hashPrefix = "hashed:"

// ErrPasswordMismatch is returned by MockPasswordManager.Compare on failure.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordManager implements auth.PasswordManager for testing. Its default
// hash is the password with a "hashed:" prefix, so Compare succeeds exactly
// when the password matches.
type MockPasswordManager struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordManager) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return hashPrefix + password, nil
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordManager) Compare(hashedPassword, password string) error {
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword == hashPrefix+password {
		return nil
	}
	return ErrPasswordMismatch
}
