package commands

import (
	"github.com/spf13/cobra"

	"github.com/questionboard/core/internal/ports"
)

// newInitCommand creates the init command
func newInitCommand(a *app, opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty collection file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.file.Init(cmd.Context())
			if err != nil {
				return storageError(err)
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if created {
				return out.Success("created " + a.file.Path())
			}
			return out.Success("exists " + a.file.Path())
		},
	}
}

// newCheckCommand creates the check command
func newCheckCommand(a *app, opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the collection file exists and holds a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.file.HealthCheck(cmd.Context()); err != nil {
				return storageError(err)
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Success("ok " + a.file.Path())
		},
	}
}

// newQuestionsCommand creates the questions command with subcommands
func newQuestionsCommand(a *app, opts *RootOptions) *cobra.Command {
	questionsCmd := &cobra.Command{
		Use:     "questions",
		Aliases: []string{"q"},
		Short:   "List, show and add questions",
	}

	questionsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all questions in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := a.service.ListQuestions(cmd.Context())
			if err != nil {
				return storageError(err)
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(questions)
		},
	})

	questionsCmd.AddCommand(&cobra.Command{
		Use:   "get <question-id>",
		Short: "Show one question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, found, err := a.service.GetQuestion(cmd.Context(), args[0])
			if err != nil {
				return storageError(err)
			}
			if !found {
				return notFoundError("question %s not found", args[0])
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(question)
		},
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			author, _ := cmd.Flags().GetString("author")
			summary, _ := cmd.Flags().GetString("summary")

			result, err := a.service.CreateQuestion(cmd.Context(), ports.NewQuestion{Author: author, Summary: summary})
			if err != nil {
				return storageError(err)
			}
			if result.Outcome == ports.OutcomeInvalid {
				return invalidInputError(result.Violations)
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(result.Value)
		},
	}
	addCmd.Flags().String("author", "", "Question author (required)")
	addCmd.Flags().String("summary", "", "Question summary (required)")
	questionsCmd.AddCommand(addCmd)

	return questionsCmd
}
