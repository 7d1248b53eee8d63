package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"

	"github.com/questionboard/core/internal/domain/entities"
	"github.com/questionboard/core/internal/infrastructure/filestore"
	"github.com/questionboard/core/internal/infrastructure/logger"
	"github.com/questionboard/core/internal/ports"
)

// QuestionRepositoryImpl implements the QuestionRepository interface on a
// single JSON collection file. Every call reads the file fresh; every
// mutation rewrites it whole.
type QuestionRepositoryImpl struct {
	file     *filestore.File
	newID    func() string
	validate *validator.Validate
	logger   *logger.Logger
}

// Option configures a QuestionRepositoryImpl
type Option func(*QuestionRepositoryImpl)

// WithIDGenerator replaces the uuid generator
func WithIDGenerator(gen func() string) Option {
	return func(r *QuestionRepositoryImpl) {
		r.newID = gen
	}
}

// WithLogger sets the repository logger
func WithLogger(l *logger.Logger) Option {
	return func(r *QuestionRepositoryImpl) {
		r.logger = l
	}
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(file *filestore.File, opts ...Option) *QuestionRepositoryImpl {
	r := &QuestionRepositoryImpl{
		file:     file,
		newID:    uuid.NewString,
		validate: newValidator(),
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("question_repository").WithFields("path", file.Path())
	return r
}

func (r *QuestionRepositoryImpl) List(ctx context.Context) ([]entities.Question, error) {
	var questions []entities.Question
	err := r.file.WithLock(ctx, func() error {
		var err error
		questions, err = r.file.ReadAll()
		return err
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepositoryImpl) GetByID(ctx context.Context, questionID string) (entities.Question, bool, error) {
	questions, err := r.List(ctx)
	if err != nil {
		return entities.Question{}, false, err
	}

	i := entities.FindQuestion(questions, questionID)
	if i < 0 {
		return entities.Question{}, false, nil
	}
	return questions[i], true, nil
}

func (r *QuestionRepositoryImpl) AddQuestion(ctx context.Context, in ports.NewQuestion) (ports.AddResult[entities.Question], error) {
	if violations := r.check(in); violations != nil {
		r.logger.Debugw("Question rejected", "violations", violations)
		return ports.Invalid[entities.Question](violations), nil
	}

	var created entities.Question
	err := r.file.WithLock(ctx, func() error {
		questions, err := r.file.ReadAll()
		if err != nil {
			return err
		}

		created = entities.Question{
			ID:      r.newID(),
			Author:  in.Author,
			Summary: in.Summary,
			Answers: []entities.Answer{},
		}
		questions = append(questions, created)

		return r.file.WriteAll(questions)
	})
	if err != nil {
		return ports.AddResult[entities.Question]{}, err
	}

	r.logger.Debugw("Question added", "question_id", created.ID)
	return ports.Created(created), nil
}

func (r *QuestionRepositoryImpl) GetAnswers(ctx context.Context, questionID string) ([]entities.Answer, bool, error) {
	question, found, err := r.GetByID(ctx, questionID)
	if err != nil || !found {
		return nil, false, err
	}
	return question.Answers, true, nil
}

func (r *QuestionRepositoryImpl) GetAnswer(ctx context.Context, questionID, answerID string) (entities.Answer, bool, error) {
	question, found, err := r.GetByID(ctx, questionID)
	if err != nil || !found {
		return entities.Answer{}, false, err
	}

	answer, found := question.FindAnswer(answerID)
	return answer, found, nil
}

func (r *QuestionRepositoryImpl) AddAnswer(ctx context.Context, questionID string, in ports.NewAnswer) (ports.AddResult[entities.Answer], error) {
	if violations := r.check(in); violations != nil {
		r.logger.Debugw("Answer rejected", "question_id", questionID, "violations", violations)
		return ports.Invalid[entities.Answer](violations), nil
	}

	var (
		created entities.Answer
		found   bool
	)
	err := r.file.WithLock(ctx, func() error {
		questions, err := r.file.ReadAll()
		if err != nil {
			return err
		}

		i := entities.FindQuestion(questions, questionID)
		if i < 0 {
			return nil
		}
		found = true

		created = entities.Answer{
			ID:      r.newID(),
			Author:  in.Author,
			Summary: in.Summary,
		}
		questions[i].Answers = append(questions[i].Answers, created)

		return r.file.WriteAll(questions)
	})
	if err != nil {
		return ports.AddResult[entities.Answer]{}, err
	}
	if !found {
		return ports.NotFound[entities.Answer](), nil
	}

	r.logger.Debugw("Answer added", "question_id", questionID, "answer_id", created.ID)
	return ports.Created(created), nil
}

// check applies the shared author/summary rule and returns nil when in is valid
func (r *QuestionRepositoryImpl) check(in interface{}) []ports.FieldViolation {
	err := r.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ports.FieldViolation{{Field: "", Rule: err.Error()}}
	}

	violations := make([]ports.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, ports.FieldViolation{Field: fe.Field(), Rule: fe.Tag()})
	}
	return violations
}

// newValidator panics if the notblank rule cannot be registered; without it
// every input would fail validation.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	// report json names so violations match the persisted field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Compile-time assertion that QuestionRepositoryImpl implements ports.QuestionRepository.
var _ ports.QuestionRepository = (*QuestionRepositoryImpl)(nil)
