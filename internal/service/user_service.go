package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/joaobosco/lembretes/internal/model"
	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
	"github.com/joaobosco/lembretes/internal/pkg/optional"
	"github.com/joaobosco/lembretes/internal/pkg/password"
	"github.com/joaobosco/lembretes/internal/repo"
	"github.com/joaobosco/lembretes/internal/validator"
)

const (
	MsgNameRequired   = "nome é obrigatório"
	MsgInvalidAge     = "a idade deve ser inteiro maior que 0"
	MsgInvalidEmail   = "email inválido"
	MsgEmptyPassword  = "password não pode ser vazio"
	MsgLongPassword   = "password deve ter no máximo 72 bytes"
	MsgEmailTaken     = "email já cadastrado"
	MsgNothingToApply = "Sem campos para atualizar"
	msgUserNotFound   = "Usuário não encontrado"
)

type CreateUserInput struct {
	Name       string  `json:"name"`
	Age        *int    `json:"age"`
	Profession *string `json:"profession"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
}

// UpdateUserInput carries only the fields present in the request body.
type UpdateUserInput struct {
	Name       optional.Value[string] `json:"name"`
	Age        optional.Value[int]    `json:"age"`
	Profession optional.Value[string] `json:"profession"`
	Email      optional.Value[string] `json:"email"`
	Password   optional.Value[string] `json:"password"`
}

type UserService struct {
	users *repo.UserRepo
	now   func() time.Time
}

func NewUserService(users *repo.UserRepo) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	if !validID(id) {
		return nil, appErr.NotFound(msgUserNotFound)
	}
	user, err := s.users.GetByID(ctx, id)
	if appErr.IsNotFound(err) {
		return nil, appErr.NotFound(msgUserNotFound)
	}
	return user, err
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, appErr.Invalid(MsgNameRequired)
	}
	if input.Age != nil && !validator.IsAge(*input.Age) {
		return nil, appErr.Invalid(MsgInvalidAge)
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	var hash string
	if input.Password != nil {
		if hash, err = hashPassword(*input.Password); err != nil {
			return nil, err
		}
	}
	user := &model.User{
		ID:         newID(),
		Name:       name,
		Email:      email,
		Age:        input.Age,
		Profession: input.Profession,
		CreatedAt:  s.now().UTC(),
	}
	created, err := s.users.Create(ctx, user, hash)
	if appErr.IsConflict(err) {
		return nil, appErr.Conflict(MsgEmailTaken)
	}
	return created, err
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*model.User, error) {
	if !validID(id) {
		return nil, appErr.NotFound(msgUserNotFound)
	}
	fields := map[string]interface{}{}
	if input.Name.Set {
		name := strings.TrimSpace(input.Name.Value)
		if input.Name.Null || name == "" {
			return nil, appErr.Invalid(MsgNameRequired)
		}
		fields["name"] = name
	}
	if input.Age.Set {
		if input.Age.Present() && !validator.IsAge(input.Age.Value) {
			return nil, appErr.Invalid(MsgInvalidAge)
		}
		fields["age"] = input.Age.Ptr()
	}
	if input.Profession.Set {
		fields["profession"] = input.Profession.Ptr()
	}
	if input.Email.Set {
		email, err := normalizeEmail(input.Email.Ptr())
		if err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if input.Password.Set {
		if !input.Password.Present() {
			return nil, appErr.Invalid(MsgEmptyPassword)
		}
		hash, err := hashPassword(input.Password.Value)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	if len(fields) == 0 {
		return nil, appErr.Invalid(MsgNothingToApply)
	}
	user, err := s.users.Update(ctx, id, fields)
	switch {
	case appErr.IsNotFound(err):
		return nil, appErr.NotFound(msgUserNotFound)
	case appErr.IsConflict(err):
		return nil, appErr.Conflict(MsgEmailTaken)
	}
	return user, err
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErr.NotFound(msgUserNotFound)
	}
	err := s.users.Delete(ctx, id)
	if appErr.IsNotFound(err) {
		return appErr.NotFound(msgUserNotFound)
	}
	return err
}

func normalizeEmail(email *string) (*string, error) {
	if email == nil {
		return nil, nil
	}
	v := strings.ToLower(strings.TrimSpace(*email))
	if !validator.IsEmail(v) {
		return nil, appErr.Invalid(MsgInvalidEmail)
	}
	return &v, nil
}

func hashPassword(plain string) (string, error) {
	if plain == "" {
		return "", appErr.Invalid(MsgEmptyPassword)
	}
	hash, err := password.Hash(plain)
	if errors.Is(err, password.ErrTooLong) {
		return "", appErr.Wrap(appErr.ErrInvalid, MsgLongPassword, err)
	}
	return hash, err
}
