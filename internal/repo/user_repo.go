package repo

import (
	"context"
	"time"

	"github.com/joaobosco/lembretes/internal/dataclient"
	"github.com/joaobosco/lembretes/internal/model"
	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
)

var userColumns = []string{"id", "name", "email", "age", "profession", "created_at", "last_login"}

type UserRepo struct {
	db dataclient.Client
}

func NewUserRepo(db dataclient.Client) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	err := r.db.Select(ctx, dataclient.Query{
		Table:   tableUsers,
		Columns: userColumns,
		OrderBy: "created_at",
		Desc:    true,
	}, &users)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.SelectOne(ctx, dataclient.Query{
		Table:   tableUsers,
		Columns: userColumns,
		Where:   map[string]interface{}{"id": id},
	}, &user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Exists reports whether a user row with id is present.
func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var row struct {
		ID string `json:"id" db:"id"`
	}
	err := r.db.SelectOne(ctx, dataclient.Query{
		Table:   tableUsers,
		Columns: []string{"id"},
		Where:   map[string]interface{}{"id": id},
	}, &row)
	if dataclient.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepo) Create(ctx context.Context, user *model.User, passwordHash string) (*model.User, error) {
	data := map[string]interface{}{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"age":        user.Age,
		"profession": user.Profession,
		"created_at": user.CreatedAt,
	}
	if passwordHash != "" {
		data["password_hash"] = passwordHash
	}
	var created model.User
	if err := r.db.Insert(ctx, tableUsers, data, userColumns, &created); err != nil {
		return nil, translate(err)
	}
	return &created, nil
}

// Update applies fields to the user and returns the stored row.
func (r *UserRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	var updated model.User
	err := r.db.Update(ctx, dataclient.Query{
		Table:   tableUsers,
		Columns: userColumns,
		Where:   map[string]interface{}{"id": id},
	}, fields, &updated)
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	count, err := r.db.Delete(ctx, tableUsers, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// GetCredentialByEmail matches email case-insensitively, so rows written
// outside the API with mixed-case addresses still resolve.
func (r *UserRepo) GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	var cred model.Credential
	err := r.db.SelectOne(ctx, dataclient.Query{
		Table:   tableUsers,
		Columns: []string{"id", "name", "email", "password_hash"},
		Where:   map[string]interface{}{"email": email},
		Fold:    []string{"email"},
	}, &cred)
	if err != nil {
		return nil, translate(err)
	}
	return &cred, nil
}

func (r *UserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	err := r.db.Update(ctx, dataclient.Query{
		Table: tableUsers,
		Where: map[string]interface{}{"id": id},
	}, map[string]interface{}{"last_login": at}, nil)
	return translate(err)
}

func (r *UserRepo) SetPasswordByEmail(ctx context.Context, email, passwordHash string) error {
	err := r.db.Update(ctx, dataclient.Query{
		Table: tableUsers,
		Where: map[string]interface{}{"email": email},
		Fold:  []string{"email"},
	}, map[string]interface{}{"password_hash": passwordHash}, nil)
	return translate(err)
}
