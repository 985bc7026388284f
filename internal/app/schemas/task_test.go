package schemas

import (
	"errors"
	"strings"
	"testing"

	"github.com/kalpovskii/taskmanager/internal/app/models"
)

func strPtr(s string) *string { return &s }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func TestTaskCreateValidate(t *testing.T) {
	t.Run("valid payload keeps given status", func(t *testing.T) {
		p := TaskCreate{Title: "Test Task", Status: models.StatusInProgress}
		if err := p.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != models.StatusInProgress {
			t.Fatalf("status changed to %q", p.Status)
		}
	})

	t.Run("omitted status defaults to todo", func(t *testing.T) {
		p := TaskCreate{Title: "Test Task"}
		if err := p.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != models.StatusTodo {
			t.Fatalf("expected default todo, got %q", p.Status)
		}
	})

	invalid := []struct {
		name    string
		payload TaskCreate
		field   string
	}{
		{"empty title", TaskCreate{Title: ""}, "title"},
		{"whitespace title", TaskCreate{Title: "   \t "}, "title"},
		{"overlong title", TaskCreate{Title: strings.Repeat("a", 256)}, "title"},
		{"unknown status", TaskCreate{Title: "ok", Status: "done"}, "status"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected *FieldError, got %T", err)
			}
			if fieldErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, fieldErr.Field)
			}
		})
	}

	t.Run("255 character title is accepted", func(t *testing.T) {
		p := TaskCreate{Title: strings.Repeat("a", 255)}
		if err := p.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestTaskUpdateValidate(t *testing.T) {
	t.Run("all fields absent is valid", func(t *testing.T) {
		p := TaskUpdate{}
		if err := p.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("present blank title is rejected", func(t *testing.T) {
		p := TaskUpdate{Title: strPtr("  ")}
		var fieldErr *FieldError
		if err := p.Validate(); !errors.As(err, &fieldErr) || fieldErr.Field != "title" {
			t.Fatalf("expected title field error, got %v", err)
		}
	})

	t.Run("present invalid status is rejected", func(t *testing.T) {
		p := TaskUpdate{Status: statusPtr("archived")}
		var fieldErr *FieldError
		if err := p.Validate(); !errors.As(err, &fieldErr) || fieldErr.Field != "status" {
			t.Fatalf("expected status field error, got %v", err)
		}
	})
}

func TestTaskUpdateApply(t *testing.T) {
	desc := "original description"
	task := models.Task{
		ID:          1,
		Title:       "original",
		Description: &desc,
		Status:      models.StatusTodo,
	}

	t.Run("absent fields stay untouched", func(t *testing.T) {
		got := task
		patch := TaskUpdate{Status: statusPtr(models.StatusInProgress)}
		patch.Apply(&got)

		if got.Title != "original" {
			t.Errorf("title changed to %q", got.Title)
		}
		if got.Description == nil || *got.Description != desc {
			t.Errorf("description changed: %v", got.Description)
		}
		if got.Status != models.StatusInProgress {
			t.Errorf("status not applied: %q", got.Status)
		}
	})

	t.Run("present fields replace stored values", func(t *testing.T) {
		got := task
		patch := TaskUpdate{
			Title:       strPtr("Updated Task"),
			Description: strPtr("new description"),
		}
		patch.Apply(&got)

		if got.Title != "Updated Task" {
			t.Errorf("unexpected title %q", got.Title)
		}
		if got.Description == nil || *got.Description != "new description" {
			t.Errorf("unexpected description %v", got.Description)
		}
		if got.Status != models.StatusTodo {
			t.Errorf("status changed to %q", got.Status)
		}
	})
}
