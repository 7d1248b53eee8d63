package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/questionboard/core/internal/domain/entities"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func initFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	out, err := run(t, "init", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "created "+path+"\n", out)
	return path
}

type questionEnvelope struct {
	Status string            `json:"status"`
	Data   entities.Question `json:"data"`
}

type answerEnvelope struct {
	Status string          `json:"status"`
	Data   entities.Answer `json:"data"`
}

func TestInit_ExistingFile(t *testing.T) {
	path := initFile(t)

	out, err := run(t, "init", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "exists "+path+"\n", out)
}

func TestQuestionAndAnswerFlow(t *testing.T) {
	path := initFile(t)

	out, err := run(t, "questions", "add", "--file", path, "-o", "json", "--author", "Rick Astley", "--summary", "What is 2+3")
	require.NoError(t, err)
	var q questionEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, "ok", q.Status)
	assert.NotEmpty(t, q.Data.ID)
	assert.Equal(t, "Rick Astley", q.Data.Author)
	assert.Empty(t, q.Data.Answers)

	out, err = run(t, "a", "add", q.Data.ID, "--file", path, "-o", "json", "--author", "Spongebob", "--summary", "I don't know")
	require.NoError(t, err)
	var a answerEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, "Spongebob", a.Data.Author)

	out, err = run(t, "questions", "get", q.Data.ID, "--file", path, "-o", "json")
	require.NoError(t, err)
	var got questionEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []entities.Answer{a.Data}, got.Data.Answers)

	out, err = run(t, "answers", "get", q.Data.ID, a.Data.ID, "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Spongebob")
	assert.Contains(t, out, "I don't know")

	out, err = run(t, "questions", "list", "--file", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], q.Data.ID)
	assert.True(t, strings.HasSuffix(lines[1], "1"))
}

func TestAnswersList_YAML(t *testing.T) {
	path := initFile(t)
	_, err := run(t, "q", "add", "--file", path, "--author", "Jack London", "--summary", "What is my name?")
	require.NoError(t, err)

	questions, err := readCollection(path)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	out, err := run(t, "answers", "list", questions[0].ID, "--file", path, "-o", "yaml")
	require.NoError(t, err)

	var resp struct {
		Status string        `yaml:"status"`
		Data   []interface{} `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Data)
}

func TestExitCodes(t *testing.T) {
	path := initFile(t)
	missing := filepath.Join(t.TempDir(), "missing.json")

	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"unknown question", []string{"questions", "get", "nope", "--file", path}, ExitFailure, "question nope not found"},
		{"unknown question for answers", []string{"answers", "list", "nope", "--file", path}, ExitFailure, "question nope not found"},
		{"unknown answer", []string{"answers", "get", "nope", "a1", "--file", path}, ExitFailure, "answer a1 of question nope not found"},
		{"add answer to unknown question", []string{"answers", "add", "nope", "--file", path, "--author", "a", "--summary", "s"}, ExitFailure, "question nope not found"},
		{"question without summary", []string{"questions", "add", "--file", path, "--author", "a"}, ExitFailure, "invalid input: summary (required)"},
		{"blank author", []string{"questions", "add", "--file", path, "--author", "  ", "--summary", "s"}, ExitFailure, "invalid input: author (notblank)"},
		{"missing collection file", []string{"questions", "list", "--file", missing}, ExitCommandError, "store operation failed"},
		{"bad format", []string{"questions", "list", "--file", path, "-o", "xml"}, ExitCommandError, "invalid format"},
		{"unknown command", []string{"frobnicate"}, ExitCommandError, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	// rejected input never reaches the file
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMetricsFile(t *testing.T) {
	path := initFile(t)
	prom := filepath.Join(t.TempDir(), "qa.prom")

	_, err := run(t, "questions", "list", "--file", path, "--metrics-file", prom)
	require.NoError(t, err)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `qa_store_operations_total{operation="list",outcome="ok"} 1`)
	assert.Contains(t, string(data), "qa_collection_questions 0")

	// failed commands still export their outcome
	_, err = run(t, "questions", "get", "nope", "--file", path, "--metrics-file", prom)
	require.Error(t, err)
	data, err = os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `qa_store_operations_total{operation="get_question",outcome="not_found"} 1`)

	_, err = run(t, "q", "add", "--file", path, "--author", "a", "--metrics-file", prom)
	require.Error(t, err)
	data, err = os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `qa_store_operations_total{operation="add_question",outcome="invalid"} 1`)

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("not json"), 0o644))
	_, err = run(t, "questions", "list", "--file", broken, "--metrics-file", prom)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	data, err = os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `qa_store_operations_total{operation="list",outcome="error"} 1`)
}

func TestCheck(t *testing.T) {
	path := initFile(t)

	out, err := run(t, "check", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "ok "+path+"\n", out)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err = run(t, "check", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, entities.ErrNotArray)

	_, err = run(t, "check", "--file", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTextOutput_EscapesControlCharacters(t *testing.T) {
	var buf bytes.Buffer
	out := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, out.Success([]entities.Answer{{ID: "a1", Author: "tab\there", Summary: "two\nlines"}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `tab\there`)
	assert.Contains(t, lines[1], `two\nlines`)
}

func TestGetExitCode_NilIsSuccess(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "-o", "xml")
	require.NoError(t, err)
	assert.Equal(t, "qa v1.0.0\n", out)
}

func readCollection(path string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var questions []entities.Question
	return questions, json.Unmarshal(data, &questions)
}
