package ports

import (
	"context"

	"github.com/questionboard/core/internal/domain/entities"
)

// QuestionRepository defines the interface for question and answer data operations
type QuestionRepository interface {
	List(ctx context.Context) ([]entities.Question, error)
	GetByID(ctx context.Context, questionID string) (entities.Question, bool, error)
	AddQuestion(ctx context.Context, in NewQuestion) (AddResult[entities.Question], error)
	GetAnswers(ctx context.Context, questionID string) ([]entities.Answer, bool, error)
	GetAnswer(ctx context.Context, questionID, answerID string) (entities.Answer, bool, error)
	AddAnswer(ctx context.Context, questionID string, in NewAnswer) (AddResult[entities.Answer], error)
}

// NewQuestion is the input for creating a question
type NewQuestion struct {
	Author  string `json:"author" yaml:"author" validate:"required,notblank"`
	Summary string `json:"summary" yaml:"summary" validate:"required,notblank"`
}

// NewAnswer is the input for creating an answer
type NewAnswer struct {
	Author  string `json:"author" yaml:"author" validate:"required,notblank"`
	Summary string `json:"summary" yaml:"summary" validate:"required,notblank"`
}

// Outcome classifies the result of a create operation.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeNotFound
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// FieldViolation names an input field and the rule it failed
type FieldViolation struct {
	Field string `json:"field" yaml:"field"`
	Rule  string `json:"rule" yaml:"rule"`
}

// AddResult is returned by create operations. Value is only meaningful
// when Outcome is OutcomeCreated; Violations is only set for OutcomeInvalid.
type AddResult[T any] struct {
	Value      T
	Outcome    Outcome
	Violations []FieldViolation
}

// Created reports whether the record was persisted
func (r AddResult[T]) Created() bool {
	return r.Outcome == OutcomeCreated
}

// Created wraps a persisted value
func Created[T any](v T) AddResult[T] {
	return AddResult[T]{Value: v, Outcome: OutcomeCreated}
}

// NotFound reports that the parent record does not exist
func NotFound[T any]() AddResult[T] {
	return AddResult[T]{Outcome: OutcomeNotFound}
}

// Invalid reports rejected input
func Invalid[T any](violations []FieldViolation) AddResult[T] {
	return AddResult[T]{Outcome: OutcomeInvalid, Violations: violations}
}
