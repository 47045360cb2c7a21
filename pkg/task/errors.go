package task

import "errors"

var (
	ErrNotFound        = errors.New("task not found")
	ErrEmptyText       = errors.New("task text is required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDueDate  = errors.New("invalid date format: use YYYY-MM-DD")
	ErrSubtaskIndex    = errors.New("subtask index out of range")
	ErrDuplicateID     = errors.New("duplicate task id")
)
