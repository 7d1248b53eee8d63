package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/questionboard/core/internal/domain/entities"
	"github.com/questionboard/core/internal/ports"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Record not found or input rejected
	ExitCommandError = 2 // Storage, configuration or usage error
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not ExitErrors are usage errors from cobra.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

func notFoundError(format string, args ...interface{}) *ExitError {
	return NewExitError(ExitFailure, fmt.Sprintf(format, args...))
}

func invalidInputError(violations []ports.FieldViolation) *ExitError {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, fmt.Sprintf("%s (%s)", v.Field, v.Rule))
	}
	return NewExitError(ExitFailure, "invalid input: "+strings.Join(parts, ", "))
}

func storageError(err error) *ExitError {
	return WrapExitError(ExitCommandError, "store operation failed", err)
}

// CLIResponse is the envelope for json and yaml output.
type CLIResponse struct {
	Status string      `json:"status" yaml:"status"`
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// OutputFormatter handles text, JSON and YAML output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(CLIResponse{Status: "ok", Data: toYAMLValue(data)})
	default:
		return f.text(data)
	}
}

// cellEscaper keeps user text from breaking tabwriter rows and columns.
var cellEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)

func cell(s string) string {
	return cellEscaper.Replace(s)
}

func (f *OutputFormatter) text(data interface{}) error {
	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	switch v := data.(type) {
	case []entities.Question:
		fmt.Fprintln(tw, "ID\tAUTHOR\tSUMMARY\tANSWERS")
		for _, q := range v {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", cell(q.ID), cell(q.Author), cell(q.Summary), q.AnswerCount())
		}
	case entities.Question:
		fmt.Fprintf(tw, "ID:\t%s\n", cell(v.ID))
		fmt.Fprintf(tw, "Author:\t%s\n", cell(v.Author))
		fmt.Fprintf(tw, "Summary:\t%s\n", cell(v.Summary))
		fmt.Fprintf(tw, "Answers:\t%d\n", v.AnswerCount())
	case []entities.Answer:
		fmt.Fprintln(tw, "ID\tAUTHOR\tSUMMARY")
		for _, a := range v {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", cell(a.ID), cell(a.Author), cell(a.Summary))
		}
	case entities.Answer:
		fmt.Fprintf(tw, "ID:\t%s\n", cell(v.ID))
		fmt.Fprintf(tw, "Author:\t%s\n", cell(v.Author))
		fmt.Fprintf(tw, "Summary:\t%s\n", cell(v.Summary))
	default:
		fmt.Fprintln(tw, v)
	}
	return tw.Flush()
}

// toYAMLValue routes records through their json tags so yaml keys match the
// persisted field names.
func toYAMLValue(data interface{}) interface{} {
	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return data
	}
	return out
}
