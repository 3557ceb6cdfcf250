package model

import "time"

type User struct {
	ID         string     `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Email      *string    `json:"email" db:"email"`
	Age        *int       `json:"age" db:"age"`
	Profession *string    `json:"profession" db:"profession"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	LastLogin  *time.Time `json:"last_login" db:"last_login"`
}

// Credential is the login view of a user row. It never leaves the server.
type Credential struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Email        string  `json:"email" db:"email"`
	PasswordHash *string `json:"password_hash" db:"password_hash"`
}

// Identity is what a bearer token asserts.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
