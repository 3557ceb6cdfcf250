package model

type Reminder struct {
	ID          string `json:"id" db:"id"`
	Description string `json:"description" db:"description"`
	Priority    int    `json:"priority" db:"priority"`
	UserID      string `json:"user_id" db:"user_id"`
	Time        string `json:"time" db:"time"`
}
