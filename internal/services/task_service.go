package services

import (
	"taskhub/internal/database"
	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// TaskService handles business logic related to tasks.
type TaskService struct {
	repo   repositories.TaskRepository
	events *Events
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo repositories.TaskRepository, events *Events) *TaskService {
	return &TaskService{repo: repo, events: events}
}

// Create stores a new task and returns its public form.
func (s *TaskService) Create(sess *database.Session, in models.TaskCreate) (*models.TaskPublic, error) {
	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
	}
	if err := s.repo.Create(sess.DB, task); err != nil {
		return nil, err
	}

	out := task.Public()
	s.events.emit(sess, "task.created", task.ID, out)
	return &out, nil
}

// List returns one page of tasks in insertion order.
func (s *TaskService) List(sess *database.Session, page Page) ([]models.TaskPublic, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	tasks, err := s.repo.List(sess.DB, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.TaskPublic, 0, len(tasks))
	for i := range tasks {
		out = append(out, tasks[i].Public())
	}
	return out, nil
}

// Get retrieves a single task by its ID.
func (s *TaskService) Get(sess *database.Session, id uint) (*models.TaskPublic, error) {
	task, err := s.repo.GetByID(sess.DB, id)
	if err != nil {
		return nil, err
	}
	out := task.Public()
	return &out, nil
}

// Update applies the fields present in patch. An empty patch returns the task unchanged.
func (s *TaskService) Update(sess *database.Session, id uint, patch models.TaskUpdate) (*models.TaskPublic, error) {
	task, err := s.repo.GetByID(sess.DB, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if patch.Title != nil {
		changes["title"] = *patch.Title
	}
	if patch.Description != nil {
		changes["description"] = *patch.Description
	}
	if patch.Completed != nil {
		changes["completed"] = *patch.Completed
	}

	if len(changes) > 0 {
		if err := s.repo.Update(sess.DB, task, changes); err != nil {
			return nil, err
		}
		s.events.emit(sess, "task.updated", task.ID, task.Public())
	}

	out := task.Public()
	return &out, nil
}

// Delete removes a task permanently.
func (s *TaskService) Delete(sess *database.Session, id uint) error {
	if err := s.repo.Delete(sess.DB, id); err != nil {
		return err
	}
	s.events.emit(sess, "task.deleted", id, nil)
	return nil
}
