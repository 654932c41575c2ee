package services_test

import (
	"context"
	"fmt"
	"testing"

	"taskhub/internal/database"
	"taskhub/internal/database/dbtest"
	"taskhub/internal/errs"
	"taskhub/internal/models"
	"taskhub/internal/repositories"
	"taskhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Lifecycle(t *testing.T) {
	provider := database.NewProvider(dbtest.New(t))
	service := services.NewTaskService(repositories.NewGORMTaskRepository(), nil)
	ctx := context.Background()

	run := func(fn func(s *database.Session) error) error {
		return provider.WithSession(ctx, fn)
	}

	var created *models.TaskPublic
	require.NoError(t, run(func(s *database.Session) (err error) {
		created, err = service.Create(s, models.TaskCreate{Title: "Write report", Description: "Q3 numbers"})
		return err
	}))
	assert.False(t, created.Completed)

	var updated *models.TaskPublic
	require.NoError(t, run(func(s *database.Session) (err error) {
		updated, err = service.Update(s, created.ID, models.TaskUpdate{Completed: boolPtr(true)})
		return err
	}))
	assert.True(t, updated.Completed)
	assert.Equal(t, "Write report", updated.Title)
	assert.Equal(t, "Q3 numbers", updated.Description)

	var unchanged *models.TaskPublic
	require.NoError(t, run(func(s *database.Session) (err error) {
		unchanged, err = service.Update(s, created.ID, models.TaskUpdate{})
		return err
	}))
	assert.Equal(t, updated, unchanged)

	require.NoError(t, run(func(s *database.Session) error {
		return service.Delete(s, created.ID)
	}))

	for i := 0; i < 2; i++ {
		err := run(func(s *database.Session) error {
			_, err := service.Get(s, created.ID)
			return err
		})
		assert.True(t, errs.Is(err, errs.KindNotFound), "attempt %d", i)
	}
}

func TestTaskService_ListHonoursPage(t *testing.T) {
	provider := database.NewProvider(dbtest.New(t))
	service := services.NewTaskService(repositories.NewGORMTaskRepository(), nil)
	ctx := context.Background()

	require.NoError(t, provider.WithSession(ctx, func(s *database.Session) error {
		for i := 1; i <= 150; i++ {
			if _, err := service.Create(s, models.TaskCreate{Title: fmt.Sprintf("task %d", i), Description: "d"}); err != nil {
				return err
			}
		}
		return nil
	}))

	var page []models.TaskPublic
	require.NoError(t, provider.WithSession(ctx, func(s *database.Session) (err error) {
		page, err = service.List(s, services.Page{Offset: 10, Limit: 100})
		return err
	}))
	require.Len(t, page, 100)
	assert.Equal(t, "task 11", page[0].Title)
	assert.Equal(t, "task 110", page[99].Title)
}
