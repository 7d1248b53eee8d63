package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questionboard/core/internal/ports"
)

func TestNewValidator_RegistersNotBlank(t *testing.T) {
	var r QuestionRepositoryImpl
	require.NotPanics(t, func() { r.validate = newValidator() })

	assert.Nil(t, r.check(ports.NewQuestion{Author: "a", Summary: "s"}))
	assert.Equal(t,
		[]ports.FieldViolation{{Field: "summary", Rule: "notblank"}},
		r.check(ports.NewAnswer{Author: "a", Summary: " \t"}),
	)
}
