package repositories

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/kalpovskii/taskmanager/internal/app/models"
	"github.com/redis/go-redis/v9"
)

type TaskCache interface {
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	SetTask(ctx context.Context, task *models.Task, ttl time.Duration) error

	GetTaskList(ctx context.Context, filter string) ([]models.Task, error)
	SetTaskList(ctx context.Context, filter string, tasks []models.Task, ttl time.Duration) error

	DeleteTask(ctx context.Context, id int64) error
	DeleteTaskLists(ctx context.Context) error
}

type RedisTaskRepository struct {
	rdb *redis.Client
}

func NewRedisTaskRepository(rdb *redis.Client) *RedisTaskRepository {
	return &RedisTaskRepository{rdb: rdb}
}

func taskKey(id int64) string {
	return "task:" + strconv.FormatInt(id, 10)
}

const taskListKeyPrefix = "tasks:list"

// listKey maps a status filter ("" for unfiltered) to its cache key.
func listKey(filter string) string {
	if filter == "" {
		return taskListKeyPrefix
	}
	return taskListKeyPrefix + ":" + filter
}

func (r *RedisTaskRepository) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	val, err := r.rdb.Get(ctx, taskKey(id)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal([]byte(val), &task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *RedisTaskRepository) SetTask(ctx context.Context, task *models.Task, ttl time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, taskKey(task.ID), data, ttl).Err()
}

func (r *RedisTaskRepository) DeleteTask(ctx context.Context, id int64) error {
	return r.rdb.Del(ctx, taskKey(id)).Err()
}

// DeleteTaskLists drops the unfiltered list entry and every per-status one.
func (r *RedisTaskRepository) DeleteTaskLists(ctx context.Context) error {
	keys := []string{
		listKey(""),
		listKey(string(models.StatusTodo)),
		listKey(string(models.StatusInProgress)),
		listKey(string(models.StatusCompleted)),
	}
	return r.rdb.Del(ctx, keys...).Err()
}

func (r *RedisTaskRepository) GetTaskList(ctx context.Context, filter string) ([]models.Task, error) {
	val, err := r.rdb.Get(ctx, listKey(filter)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *RedisTaskRepository) SetTaskList(ctx context.Context, filter string, tasks []models.Task, ttl time.Duration) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, listKey(filter), data, ttl).Err()
}

// NopTaskCache is used when no Redis address is configured.
type NopTaskCache struct{}

func (NopTaskCache) GetTask(ctx context.Context, id int64) (*models.Task, error) { return nil, nil }
func (NopTaskCache) SetTask(ctx context.Context, task *models.Task, ttl time.Duration) error {
	return nil
}
func (NopTaskCache) GetTaskList(ctx context.Context, filter string) ([]models.Task, error) {
	return nil, nil
}
func (NopTaskCache) SetTaskList(ctx context.Context, filter string, tasks []models.Task, ttl time.Duration) error {
	return nil
}
func (NopTaskCache) DeleteTask(ctx context.Context, id int64) error { return nil }
func (NopTaskCache) DeleteTaskLists(ctx context.Context) error      { return nil }
