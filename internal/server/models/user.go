// Package models defines the server-side domain records shared by the
// service layer and the repositories.
package models

import "time"

// User is a registered account. Email is unique and case-sensitive.
type User struct {
	ID           string
	Name         string
	Email        string
	Password     string
	RegisteredOn time.Time
}
