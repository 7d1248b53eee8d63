package entities

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_FindAnswer(t *testing.T) {
	q := Question{Answers: []Answer{{ID: "a1", Author: "x"}, {ID: "a2"}, {ID: "a1", Author: "dup"}}}

	a, ok := q.FindAnswer("a1")
	assert.True(t, ok)
	assert.Equal(t, "x", a.Author)

	_, ok = q.FindAnswer("a3")
	assert.False(t, ok)
}

func TestFindQuestion(t *testing.T) {
	questions := []Question{{ID: "q1"}, {ID: "q2"}}

	assert.Equal(t, 1, FindQuestion(questions, "q2"))
	assert.Equal(t, -1, FindQuestion(questions, "q3"))
	assert.Equal(t, -1, FindQuestion(nil, "q1"))
}

func TestQuestion_Normalize(t *testing.T) {
	q := Question{ID: "q1"}
	q.Normalize()
	assert.NotNil(t, q.Answers)
	assert.Zero(t, q.AnswerCount())
}

func TestIsStorageError(t *testing.T) {
	se := &StorageError{Op: "read", Path: "q.json", Err: os.ErrPermission}

	assert.True(t, IsStorageError(se))
	assert.True(t, IsStorageError(fmt.Errorf("failed to list questions: %w", se)))
	assert.False(t, IsStorageError(os.ErrPermission))
	assert.ErrorIs(t, se, os.ErrPermission)
}
