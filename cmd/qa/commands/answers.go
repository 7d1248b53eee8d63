package commands

import (
	"github.com/spf13/cobra"

	"github.com/questionboard/core/internal/ports"
)

// newAnswersCommand creates the answers command with subcommands
func newAnswersCommand(a *app, opts *RootOptions) *cobra.Command {
	answersCmd := &cobra.Command{
		Use:     "answers",
		Aliases: []string{"a"},
		Short:   "List, show and add answers of a question",
	}

	answersCmd.AddCommand(&cobra.Command{
		Use:   "list <question-id>",
		Short: "List the answers of a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, found, err := a.service.ListAnswers(cmd.Context(), args[0])
			if err != nil {
				return storageError(err)
			}
			if !found {
				return notFoundError("question %s not found", args[0])
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(answers)
		},
	})

	answersCmd.AddCommand(&cobra.Command{
		Use:   "get <question-id> <answer-id>",
		Short: "Show one answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, found, err := a.service.GetAnswer(cmd.Context(), args[0], args[1])
			if err != nil {
				return storageError(err)
			}
			if !found {
				return notFoundError("answer %s of question %s not found", args[1], args[0])
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(answer)
		},
	})

	addCmd := &cobra.Command{
		Use:   "add <question-id>",
		Short: "Add an answer to a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			author, _ := cmd.Flags().GetString("author")
			summary, _ := cmd.Flags().GetString("summary")

			result, err := a.service.CreateAnswer(cmd.Context(), args[0], ports.NewAnswer{Author: author, Summary: summary})
			if err != nil {
				return storageError(err)
			}
			switch result.Outcome {
			case ports.OutcomeInvalid:
				return invalidInputError(result.Violations)
			case ports.OutcomeNotFound:
				return notFoundError("question %s not found", args[0])
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(result.Value)
		},
	}
	addCmd.Flags().String("author", "", "Answer author (required)")
	addCmd.Flags().String("summary", "", "Answer summary (required)")
	answersCmd.AddCommand(addCmd)

	return answersCmd
}
