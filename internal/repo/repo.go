package repo

import (
	"github.com/joaobosco/lembretes/internal/dataclient"
	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
)

const (
	tableUsers     = "users"
	tableReminders = "reminders"
)

// translate turns the data client's row and constraint codes into the
// application sentinels. Anything else is returned untouched.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case dataclient.IsNoRows(err):
		return appErr.ErrNotFound
	case dataclient.IsConflict(err):
		return appErr.ErrConflict
	}
	return err
}
