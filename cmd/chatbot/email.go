package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harunnryd/chatbot/internal/email"
	"github.com/harunnryd/chatbot/internal/repl"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var emailCmd = &cobra.Command{
	Use:   "email [request...]",
	Short: "Draft a professional email",
	Long: `Draft a real-world email from a short request. Each request first passes a content
safety check; rejected requests are not drafted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		outPath, _ := cmd.Flags().GetString("out")

		generator := email.NewGenerator(newDispatcher(), cfg.Prompts.EmailSystem, log)
		out := cmd.OutOrStdout()

		if interactive {
			session := repl.New(cmd.InOrStdin(), out, func(ctx context.Context, line string) error {
				return draftEmail(ctx, generator, out, line, "")
			}).WithIntro("Email assistant started! Type your request (type 'exit' to quit):")
			return session.Run(cmd.Context())
		}

		if len(args) == 0 {
			return fmt.Errorf("describe the email to draft, or pass --interactive")
		}
		return draftEmail(cmd.Context(), generator, out, strings.Join(args, " "), outPath)
	},
}

func draftEmail(ctx context.Context, generator *email.Generator, out io.Writer, request, outPath string) error {
	draft, err := generator.Draft(ctx, request)
	if errors.Is(err, email.ErrRejected) {
		fmt.Fprintln(out, email.RejectionMessage)
		return nil
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := atomic.WriteFile(outPath, strings.NewReader(draft+"\n")); err != nil {
			return fmt.Errorf("write draft to %s: %w", outPath, err)
		}
		fmt.Fprintf(out, "Draft written to %s\n", outPath)
		return nil
	}

	fmt.Fprintf(out, "\nEmail Draft:\n%s\n\n", draft)
	return nil
}

func init() {
	rootCmd.AddCommand(emailCmd)
	emailCmd.Flags().BoolP("interactive", "i", false, "read requests from stdin until 'exit'")
	emailCmd.Flags().StringP("out", "o", "", "write the draft to this file instead of stdout")
}
