package services

import (
	"context"
	"time"

	"github.com/kalpovskii/taskmanager/internal/app/models"
	"github.com/kalpovskii/taskmanager/internal/app/repositories"
	"github.com/kalpovskii/taskmanager/internal/app/schemas"
	"github.com/kalpovskii/taskmanager/internal/kafka"
)

const (
	taskTTL     = 60 * time.Second
	taskListTTL = 15 * time.Second
)

// EventProducer publishes task mutation events. Implemented by
// kafka.Producer.
type EventProducer interface {
	TaskEvent(action string, taskID int64)
}

type TaskService struct {
	repo   repositories.TaskRepository
	cache  repositories.TaskCache
	events EventProducer
}

// NewTaskService wires the storage, cache and event collaborators. events
// may be nil when no broker is configured.
func NewTaskService(repo repositories.TaskRepository, cache repositories.TaskCache, events EventProducer) *TaskService {
	return &TaskService{
		repo:   repo,
		cache:  cache,
		events: events,
	}
}

func (s *TaskService) emit(action string, taskID int64) {
	if s.events != nil {
		s.events.TaskEvent(action, taskID)
	}
}

// Create validates the payload and persists a new task. Both timestamps are
// set to the same instant.
func (s *TaskService) Create(ctx context.Context, payload *schemas.TaskCreate) (*models.Task, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	_ = s.cache.SetTask(ctx, task, taskTTL)
	_ = s.cache.DeleteTaskLists(ctx)

	s.emit(kafka.ActionCreated, task.ID)

	return task, nil
}

// List returns tasks, optionally restricted to one status, ordered by id.
func (s *TaskService) List(ctx context.Context, status *models.TaskStatus) ([]models.Task, error) {
	filter := ""
	if status != nil {
		filter = string(*status)
	}

	if tasks, err := s.cache.GetTaskList(ctx, filter); err == nil && tasks != nil {
		return tasks, nil
	}

	tasks, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetTaskList(ctx, filter, tasks, taskListTTL)

	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	if task, err := s.cache.GetTask(ctx, id); err == nil && task != nil {
		return task, nil
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetTask(ctx, task, taskTTL)

	return task, nil
}

// Update applies the fields present in the patch to the stored task and
// refreshes updated_at. Absent fields keep their stored values.
func (s *TaskService) Update(ctx context.Context, id int64, patch *schemas.TaskUpdate) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	patch.Apply(task)
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	_ = s.cache.SetTask(ctx, task, taskTTL)
	_ = s.cache.DeleteTaskLists(ctx)

	s.emit(kafka.ActionUpdated, task.ID)

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.DeleteTask(ctx, id)
	_ = s.cache.DeleteTaskLists(ctx)

	s.emit(kafka.ActionDeleted, id)

	return nil
}
