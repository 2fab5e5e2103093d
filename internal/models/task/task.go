package task

import (
	"time"
)

type Task struct {
	ID          int64     `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type StatusFilter string
type SortOrder string

const FilterAll StatusFilter = "all"
const FilterPending StatusFilter = "pending"
const FilterCompleted StatusFilter = "completed"

const SortCreated SortOrder = "created"
const SortTitle SortOrder = "title"

const TitleMaxLen = 200
const DescriptionMaxLen = 1000

func (f StatusFilter) Valid() bool {
	return f == FilterAll || f == FilterPending || f == FilterCompleted
}

func (o SortOrder) Valid() bool {
	return o == SortCreated || o == SortTitle
}
