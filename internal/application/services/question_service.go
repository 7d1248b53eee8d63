package services

import (
	"context"
	"fmt"
	"time"

	"github.com/questionboard/core/internal/domain/entities"
	"github.com/questionboard/core/internal/infrastructure/logger"
	"github.com/questionboard/core/internal/infrastructure/metrics"
	"github.com/questionboard/core/internal/ports"
)

const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
	outcomeOK       = "ok"
)

// QuestionService handles question and answer operations
type QuestionService struct {
	questionRepo ports.QuestionRepository
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

// NewQuestionService creates a new question service. m may be nil.
func NewQuestionService(questionRepo ports.QuestionRepository, m *metrics.Metrics, logger *logger.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		metrics:      m,
		logger:       logger.WithComponent("question_service"),
	}
}

// ListQuestions returns the whole collection in insertion order
func (s *QuestionService) ListQuestions(ctx context.Context) ([]entities.Question, error) {
	start := time.Now()
	questions, err := s.questionRepo.List(ctx)
	s.record("list", outcomeOK, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	s.metrics.SetQuestionCount(len(questions))
	return questions, nil
}

// GetQuestion retrieves a question by ID
func (s *QuestionService) GetQuestion(ctx context.Context, questionID string) (entities.Question, bool, error) {
	start := time.Now()
	question, found, err := s.questionRepo.GetByID(ctx, questionID)
	s.record("get_question", lookupOutcome(found), start, err)
	if err != nil {
		return entities.Question{}, false, fmt.Errorf("failed to get question: %w", err)
	}

	return question, found, nil
}

// CreateQuestion validates and persists a new question
func (s *QuestionService) CreateQuestion(ctx context.Context, in ports.NewQuestion) (ports.AddResult[entities.Question], error) {
	start := time.Now()
	result, err := s.questionRepo.AddQuestion(ctx, in)
	s.record("add_question", result.Outcome.String(), start, err)
	if err != nil {
		return ports.AddResult[entities.Question]{}, fmt.Errorf("failed to create question: %w", err)
	}

	if result.Created() {
		s.logger.Infow("Question created successfully", "question_id", result.Value.ID, "author", result.Value.Author)
	}

	return result, nil
}

// ListAnswers retrieves the answers of a question
func (s *QuestionService) ListAnswers(ctx context.Context, questionID string) ([]entities.Answer, bool, error) {
	start := time.Now()
	answers, found, err := s.questionRepo.GetAnswers(ctx, questionID)
	s.record("get_answers", lookupOutcome(found), start, err)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list answers: %w", err)
	}

	return answers, found, nil
}

// GetAnswer retrieves one answer of a question
func (s *QuestionService) GetAnswer(ctx context.Context, questionID, answerID string) (entities.Answer, bool, error) {
	start := time.Now()
	answer, found, err := s.questionRepo.GetAnswer(ctx, questionID, answerID)
	s.record("get_answer", lookupOutcome(found), start, err)
	if err != nil {
		return entities.Answer{}, false, fmt.Errorf("failed to get answer: %w", err)
	}

	return answer, found, nil
}

// CreateAnswer validates and persists a new answer under an existing question
func (s *QuestionService) CreateAnswer(ctx context.Context, questionID string, in ports.NewAnswer) (ports.AddResult[entities.Answer], error) {
	start := time.Now()
	result, err := s.questionRepo.AddAnswer(ctx, questionID, in)
	s.record("add_answer", result.Outcome.String(), start, err)
	if err != nil {
		return ports.AddResult[entities.Answer]{}, fmt.Errorf("failed to create answer: %w", err)
	}

	if result.Created() {
		s.logger.Infow("Answer created successfully", "question_id", questionID, "answer_id", result.Value.ID)
	}

	return result, nil
}

func (s *QuestionService) record(op, outcome string, start time.Time, err error) {
	if err != nil {
		outcome = outcomeError
	}
	d := time.Since(start)
	s.metrics.Observe(op, outcome, d)
	s.logger.LogStoreOperation(op, outcome, d, err)
}

func lookupOutcome(found bool) string {
	if found {
		return outcomeFound
	}
	return outcomeNotFound
}

// Compile-time assertion that QuestionService implements ports.QuestionService.
var _ ports.QuestionService = (*QuestionService)(nil)
