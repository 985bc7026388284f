package schemas

import (
	"strings"
	"unicode/utf8"

	"github.com/kalpovskii/taskmanager/internal/app/models"
)

const maxTitleLen = 255

// FieldError reports a validation failure on a single payload field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func validateTitle(title string) *FieldError {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return &FieldError{Field: "title", Message: "cannot be empty or whitespace"}
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLen {
		return &FieldError{Field: "title", Message: "must be at most 255 characters"}
	}
	return nil
}

// TaskCreate is the payload for creating a task. Status defaults to todo
// when omitted.
type TaskCreate struct {
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
}

// Validate checks field constraints and fills in the status default.
func (p *TaskCreate) Validate() error {
	if err := validateTitle(p.Title); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = models.StatusTodo
	} else if !p.Status.Valid() {
		return &FieldError{Field: "status", Message: "must be one of todo, in_progress, completed"}
	}
	return nil
}

// TaskUpdate is a partial-update payload. Nil fields were absent from the
// request and leave the stored value untouched.
type TaskUpdate struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
}

// Validate checks every field that is present.
func (p *TaskUpdate) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return &FieldError{Field: "status", Message: "must be one of todo, in_progress, completed"}
	}
	return nil
}

// Apply merges the present fields onto the task. Timestamps are left to the
// caller.
func (p *TaskUpdate) Apply(t *models.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
