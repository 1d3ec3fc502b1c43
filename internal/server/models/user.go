// Package models contains the persisted entity types shared by the server
// repositories and services.
package models

import "time"

// User is a credential record: the login identity behind a registered
// contact. PasswordHash is empty for provisioned-but-passwordless accounts.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
}

// HasUsableSecret reports whether a password is set for this user. A contact
// counts as registered only when its linked user has a usable secret.
func (u *User) HasUsableSecret() bool {
	return u != nil && u.PasswordHash != ""
}
