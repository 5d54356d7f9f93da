package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// PasswordScheme turns a plain password into its stored form and checks a
// candidate against it.
type PasswordScheme interface {
	Encode(plain string) (string, error)
	Matches(stored, plain string) bool
}

// Plain stores passwords verbatim.
type Plain struct{}

func (Plain) Encode(plain string) (string, error) {
	return plain, nil
}

func (Plain) Matches(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}

// Bcrypt stores bcrypt hashes. A zero Cost means bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Encode(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (Bcrypt) Matches(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

var ErrUnknownScheme = errors.New("unknown password scheme")

// ErrPasswordTooLong is returned by Bcrypt.Encode for passwords over 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// SchemeByName resolves a configured scheme name.
func SchemeByName(name string) (PasswordScheme, error) {
	switch name {
	case "", SchemePlain:
		return Plain{}, nil
	case SchemeBcrypt:
		return Bcrypt{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}
