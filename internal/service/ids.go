package service

import (
	"github.com/google/uuid"

	"github.com/joaobosco/lembretes/internal/validator"
)

func newID() string {
	return uuid.NewString()
}

// validID screens path ids before they reach the data layer; a malformed id
// can never match a row.
func validID(id string) bool {
	return validator.IsUUID(id)
}
