package entities

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotArray = errors.New("collection is not a JSON array")
)

// StorageError reports a failed read or write of the collection file.
// It is the only error class returned by the question store.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err carries a StorageError anywhere in its chain
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Answer is a reply nested under exactly one question
type Answer struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Summary string `json:"summary"`
}

// Question is a top-level record with its answers in insertion order
type Question struct {
	ID      string   `json:"id"`
	Author  string   `json:"author"`
	Summary string   `json:"summary"`
	Answers []Answer `json:"answers"`
}

// FindAnswer returns the first answer with the given id
func (q *Question) FindAnswer(answerID string) (Answer, bool) {
	for _, a := range q.Answers {
		if a.ID == answerID {
			return a, true
		}
	}
	return Answer{}, false
}

// AnswerCount returns the number of answers attached to the question
func (q *Question) AnswerCount() int {
	return len(q.Answers)
}

// Normalize ensures Answers is never nil so it serializes as an empty array
func (q *Question) Normalize() {
	if q.Answers == nil {
		q.Answers = []Answer{}
	}
}

// FindQuestion returns the index of the first question with the given id, or -1
func FindQuestion(questions []Question, questionID string) int {
	for i := range questions {
		if questions[i].ID == questionID {
			return i
		}
	}
	return -1
}
