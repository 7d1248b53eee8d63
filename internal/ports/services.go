package ports

import (
	"context"

	"github.com/questionboard/core/internal/domain/entities"
)

// QuestionService interface for question board operations
type QuestionService interface {
	ListQuestions(ctx context.Context) ([]entities.Question, error)
	GetQuestion(ctx context.Context, questionID string) (entities.Question, bool, error)
	CreateQuestion(ctx context.Context, in NewQuestion) (AddResult[entities.Question], error)
	ListAnswers(ctx context.Context, questionID string) ([]entities.Answer, bool, error)
	GetAnswer(ctx context.Context, questionID, answerID string) (entities.Answer, bool, error)
	CreateAnswer(ctx context.Context, questionID string, in NewAnswer) (AddResult[entities.Answer], error)
}
