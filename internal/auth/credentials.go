package auth

import (
	"github.com/claytonfaria/userapi/internal/apperrors"
)

// CredentialValidator checks a login submission and yields the subject
// to issue a token for.
type CredentialValidator interface {
	Authenticate(email, password string) (string, error)
}

// StaticValidator accepts a single hardcoded identity and ignores the
// password. It is a stand-in for a real credential store.
//
// TODO: replace with a users-table lookup and bcrypt hash comparison
// once accounts carry passwords.
type StaticValidator struct {
	acceptedEmail string
}

func NewStaticValidator(acceptedEmail string) *StaticValidator {
	return &StaticValidator{acceptedEmail: acceptedEmail}
}

func (v *StaticValidator) Authenticate(email, password string) (string, error) {
	if email != v.acceptedEmail {
		return "", apperrors.ErrWrongCredentials
	}
	return email, nil
}
