package dto

import (
	"encoding/json"
	"time"
	"todoApi/internal/models/task"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskRequest различает «поле не прислали» и «поле прислали пустым».
// TitleSet/DescriptionSet заполняются в UnmarshalJSON по ключам тела запроса.
type UpdateTaskRequest struct {
	Title          *string `json:"-"`
	Description    *string `json:"-"`
	TitleSet       bool    `json:"-"`
	DescriptionSet bool    `json:"-"`
}

func (r *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["title"]; ok {
		r.TitleSet = true
		if err := json.Unmarshal(v, &r.Title); err != nil {
			return err
		}
	}

	if v, ok := raw["description"]; ok {
		r.DescriptionSet = true
		if err := json.Unmarshal(v, &r.Description); err != nil {
			return err
		}
	}

	return nil
}

// HasFields сообщает, прислали ли хоть одно распознанное поле.
func (r *UpdateTaskRequest) HasFields() bool {
	return r.TitleSet || r.DescriptionSet
}

type TaskResponse struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
