package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

func TestSubtaskCreate_RequiresExistingTask(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewSubtaskService(db, rm)

	_, err := s.Create(context.Background(), SubtaskInput{TaskID: 42, Subtasktext: "orphan"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, rm.s.subtasks)
}

func TestSubtaskCreate_AndUpdate(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	expectTx(mock, 1)

	rm := newFakeRepoManager()
	taskDetail, err := NewTaskService(db, rm).Create(context.Background(), taskInput())
	require.NoError(t, err)

	s := NewSubtaskService(db, rm)

	created, err := s.Create(context.Background(), SubtaskInput{
		TaskID:      taskDetail.Task.ID,
		Subtasktext: "  write docs  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "write docs", created.Subtasktext)
	assert.False(t, created.Done)

	// ownership is not writable: a different task id is ignored
	updated, err := s.Update(context.Background(), created.ID, SubtaskInput{
		TaskID:      999,
		Subtasktext: "write docs",
		Done:        true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	assert.Equal(t, taskDetail.Task.ID, updated.TaskID)
}

func TestSubtaskValidation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewSubtaskService(db, newFakeRepoManager())

	_, err := s.Create(context.Background(), SubtaskInput{TaskID: 1, Subtasktext: "   "})
	assert.ErrorIs(t, err, common.ErrorValidation)
}
