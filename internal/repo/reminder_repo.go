package repo

import (
	"context"

	"github.com/joaobosco/lembretes/internal/dataclient"
	"github.com/joaobosco/lembretes/internal/model"
	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
)

var reminderColumns = []string{"id", "description", "priority", "user_id", "time"}

type ReminderRepo struct {
	db dataclient.Client
}

func NewReminderRepo(db dataclient.Client) *ReminderRepo {
	return &ReminderRepo{db: db}
}

// List returns reminders ordered by time. An empty userID lists everything.
func (r *ReminderRepo) List(ctx context.Context, userID string) ([]model.Reminder, error) {
	q := dataclient.Query{
		Table:   tableReminders,
		Columns: reminderColumns,
		OrderBy: "time",
	}
	if userID != "" {
		q.Where = map[string]interface{}{"user_id": userID}
	}
	reminders := make([]model.Reminder, 0)
	if err := r.db.Select(ctx, q, &reminders); err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	return reminders, nil
}

func (r *ReminderRepo) GetByID(ctx context.Context, id string) (*model.Reminder, error) {
	var reminder model.Reminder
	err := r.db.SelectOne(ctx, dataclient.Query{
		Table:   tableReminders,
		Columns: reminderColumns,
		Where:   map[string]interface{}{"id": id},
	}, &reminder)
	if err != nil {
		return nil, translate(err)
	}
	return &reminder, nil
}

func (r *ReminderRepo) Create(ctx context.Context, reminder *model.Reminder) (*model.Reminder, error) {
	data := map[string]interface{}{
		"id":          reminder.ID,
		"description": reminder.Description,
		"priority":    reminder.Priority,
		"user_id":     reminder.UserID,
		"time":        reminder.Time,
	}
	var created model.Reminder
	if err := r.db.Insert(ctx, tableReminders, data, reminderColumns, &created); err != nil {
		return nil, translate(err)
	}
	return &created, nil
}

func (r *ReminderRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Reminder, error) {
	var updated model.Reminder
	err := r.db.Update(ctx, dataclient.Query{
		Table:   tableReminders,
		Columns: reminderColumns,
		Where:   map[string]interface{}{"id": id},
	}, fields, &updated)
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

func (r *ReminderRepo) Delete(ctx context.Context, id string) error {
	count, err := r.db.Delete(ctx, tableReminders, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
