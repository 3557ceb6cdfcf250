package service

import (
	"context"
	"strings"

	"github.com/joaobosco/lembretes/internal/model"
	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
	"github.com/joaobosco/lembretes/internal/pkg/optional"
	"github.com/joaobosco/lembretes/internal/repo"
	"github.com/joaobosco/lembretes/internal/validator"
)

const (
	MsgDescriptionRequired = "description é obrigatório"
	MsgInvalidPriority     = "priority deve ser 1..5"
	MsgUserIDRequired      = "user_id é obrigatório"
	MsgInvalidTime         = "time deve ser HH:MM"
	MsgUnknownUser         = "user_id não encontrado"
	msgReminderNotFound    = "Lembrete não encontrado"
)

type CreateReminderInput struct {
	Description string `json:"description"`
	Priority    *int   `json:"priority"`
	UserID      string `json:"user_id"`
	Time        string `json:"time"`
}

type UpdateReminderInput struct {
	Description optional.Value[string] `json:"description"`
	Priority    optional.Value[int]    `json:"priority"`
	UserID      optional.Value[string] `json:"user_id"`
	Time        optional.Value[string] `json:"time"`
}

type ReminderService struct {
	reminders *repo.ReminderRepo
	users     *repo.UserRepo
}

func NewReminderService(reminders *repo.ReminderRepo, users *repo.UserRepo) *ReminderService {
	return &ReminderService{reminders: reminders, users: users}
}

// List returns every reminder, or only those of userID when it is not empty.
func (s *ReminderService) List(ctx context.Context, userID string) ([]model.Reminder, error) {
	userID = strings.TrimSpace(userID)
	if userID != "" && !validID(userID) {
		return []model.Reminder{}, nil
	}
	return s.reminders.List(ctx, userID)
}

func (s *ReminderService) Get(ctx context.Context, id string) (*model.Reminder, error) {
	if !validID(id) {
		return nil, appErr.NotFound(msgReminderNotFound)
	}
	reminder, err := s.reminders.GetByID(ctx, id)
	if appErr.IsNotFound(err) {
		return nil, appErr.NotFound(msgReminderNotFound)
	}
	return reminder, err
}

func (s *ReminderService) Create(ctx context.Context, input CreateReminderInput) (*model.Reminder, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, appErr.Invalid(MsgDescriptionRequired)
	}
	if input.Priority == nil || !validator.IsPriority(*input.Priority) {
		return nil, appErr.Invalid(MsgInvalidPriority)
	}
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, appErr.Invalid(MsgUserIDRequired)
	}
	if !validator.IsClock(input.Time) {
		return nil, appErr.Invalid(MsgInvalidTime)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.reminders.Create(ctx, &model.Reminder{
		ID:          newID(),
		Description: description,
		Priority:    *input.Priority,
		UserID:      userID,
		Time:        input.Time,
	})
}

func (s *ReminderService) Update(ctx context.Context, id string, input UpdateReminderInput) (*model.Reminder, error) {
	if !validID(id) {
		return nil, appErr.NotFound(msgReminderNotFound)
	}
	fields := map[string]interface{}{}
	if input.Description.Set {
		description := strings.TrimSpace(input.Description.Value)
		if input.Description.Null || description == "" {
			return nil, appErr.Invalid(MsgDescriptionRequired)
		}
		fields["description"] = description
	}
	if input.Priority.Set {
		if !input.Priority.Present() || !validator.IsPriority(input.Priority.Value) {
			return nil, appErr.Invalid(MsgInvalidPriority)
		}
		fields["priority"] = input.Priority.Value
	}
	var userID string
	if input.UserID.Set {
		userID = strings.TrimSpace(input.UserID.Value)
		if input.UserID.Null || userID == "" {
			return nil, appErr.Invalid(MsgUserIDRequired)
		}
		fields["user_id"] = userID
	}
	if input.Time.Set {
		if !input.Time.Present() || !validator.IsClock(input.Time.Value) {
			return nil, appErr.Invalid(MsgInvalidTime)
		}
		fields["time"] = input.Time.Value
	}
	if len(fields) == 0 {
		return nil, appErr.Invalid(MsgNothingToApply)
	}
	if userID != "" {
		if err := s.ensureUser(ctx, userID); err != nil {
			return nil, err
		}
	}
	reminder, err := s.reminders.Update(ctx, id, fields)
	if appErr.IsNotFound(err) {
		return nil, appErr.NotFound(msgReminderNotFound)
	}
	return reminder, err
}

func (s *ReminderService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErr.NotFound(msgReminderNotFound)
	}
	err := s.reminders.Delete(ctx, id)
	if appErr.IsNotFound(err) {
		return appErr.NotFound(msgReminderNotFound)
	}
	return err
}

// ensureUser fails with a validation error when userID does not name a
// stored user. Lookup failures are returned as they are.
func (s *ReminderService) ensureUser(ctx context.Context, userID string) error {
	if !validID(userID) {
		return appErr.Invalid(MsgUnknownUser)
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return appErr.Invalid(MsgUnknownUser)
	}
	return nil
}
