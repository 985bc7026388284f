package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kalpovskii/taskmanager/internal/app/models"
	"github.com/kalpovskii/taskmanager/internal/app/schemas"
)

// TaskAPI is the surface of services.TaskService used by the handlers.
type TaskAPI interface {
	Create(ctx context.Context, payload *schemas.TaskCreate) (*models.Task, error)
	List(ctx context.Context, status *models.TaskStatus) ([]models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Update(ctx context.Context, id int64, patch *schemas.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type server struct {
	tasks TaskAPI
}

func setupRouter(tasks TaskAPI, apiKey string) *gin.Engine {
	s := &server{tasks: tasks}

	r := gin.Default()
	r.Use(RequestID())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Task Manager API"})
	})

	authed := r.Group("/tasks", APIKeyAuth(apiKey))
	authed.POST("/", s.createTask)
	authed.GET("/", s.listTasks)
	authed.GET("/:id", s.getTask)
	authed.PUT("/:id", s.updateTask)
	authed.DELETE("/:id", s.deleteTask)

	return r
}

// respondError maps service errors onto the response taxonomy. Unexpected
// errors are logged with the request id and surface as a generic 500.
func (s *server) respondError(c *gin.Context, err error) {
	var fieldErr *schemas.FieldError
	switch {
	case errors.Is(err, models.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": fieldErr.Error()})
	default:
		log.Printf("request_id=%s: %v", c.GetString("request_id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

func (s *server) createTask(c *gin.Context) {
	var payload schemas.TaskCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), &payload)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (s *server) listTasks(c *gin.Context) {
	var status *models.TaskStatus
	if v := c.Query("status"); v != "" {
		st := models.TaskStatus(v)
		if !st.Valid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid status filter"})
			return
		}
		status = &st
	}

	tasks, err := s.tasks.List(c.Request.Context(), status)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (s *server) getTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return
	}

	task, err := s.tasks.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (s *server) updateTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return
	}

	var patch schemas.TaskUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), id, &patch)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (s *server) deleteTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
