package database_test

import (
	"context"
	"errors"
	"testing"

	"taskhub/internal/database"
	"taskhub/internal/database/dbtest"
	"taskhub/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countTasks(t *testing.T, p *database.Provider) int64 {
	var n int64
	err := p.WithSession(context.Background(), func(s *database.Session) error {
		return s.DB.Model(&models.Task{}).Count(&n).Error
	})
	require.NoError(t, err)
	return n
}

func TestWithSessionCommitsAndRunsAfterCommit(t *testing.T) {
	p := database.NewProvider(dbtest.New(t))

	var fired bool
	err := p.WithSession(context.Background(), func(s *database.Session) error {
		s.AfterCommit(func() { fired = true })
		return s.DB.Create(&models.Task{Title: "write docs", Description: "readme"}).Error
	})
	require.NoError(t, err)
	assert.True(t, fired)
	assert.EqualValues(t, 1, countTasks(t, p))
}

func TestWithSessionRollsBackOnError(t *testing.T) {
	p := database.NewProvider(dbtest.New(t))
	boom := errors.New("boom")

	var fired bool
	err := p.WithSession(context.Background(), func(s *database.Session) error {
		s.AfterCommit(func() { fired = true })
		if err := s.DB.Create(&models.Task{Title: "doomed", Description: "x"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, fired)
	assert.EqualValues(t, 0, countTasks(t, p))
}

func TestWithSessionRollsBackOnPanic(t *testing.T) {
	p := database.NewProvider(dbtest.New(t))

	assert.Panics(t, func() {
		_ = p.WithSession(context.Background(), func(s *database.Session) error {
			s.DB.Create(&models.Task{Title: "doomed", Description: "x"})
			panic("handler exploded")
		})
	})
	assert.EqualValues(t, 0, countTasks(t, p))
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := database.Open("mysql://root@localhost/app", false, zerolog.Nop())
	assert.Error(t, err)
}

func TestPingAndClose(t *testing.T) {
	db, err := database.Open("sqlite:///:memory:", false, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, database.Ping(context.Background(), db))
	assert.NoError(t, database.Close(db))
	assert.Error(t, database.Ping(context.Background(), db))
}
