package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/harunnryd/chatbot/internal/model/contract"
	"github.com/harunnryd/chatbot/internal/repl"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Read questions from stdin and answer each one on its own.
Every line is sent as a fresh system + user pair; earlier turns are not replayed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatcher := newDispatcher()
		out := cmd.OutOrStdout()
		system := cfg.Prompts.System

		session := repl.New(cmd.InOrStdin(), out, func(ctx context.Context, line string) error {
			answer := dispatcher.Reply(ctx, []contract.Message{
				contract.System(system),
				contract.User(line),
			})
			fmt.Fprintln(out, "Bot:", answer)
			return nil
		}).WithIntro(fmt.Sprintf("Chatting with %s. Type 'exit' to quit, '/help' for commands.", dispatcher.Model()))

		session.Handle("system", "replace the system prompt for the next questions", func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(out, "System prompt: %s\n", system)
				return nil
			}
			system = strings.Join(args, " ")
			fmt.Fprintln(out, "System prompt updated.")
			return nil
		})

		return session.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
