package main

import (
	"fmt"
	"strings"

	"github.com/harunnryd/chatbot/internal/model/contract"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt...]",
	Short: "Ask a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		system, _ := cmd.Flags().GetString("system")
		if strings.TrimSpace(system) == "" {
			system = cfg.Prompts.System
		}

		messages := []contract.Message{
			contract.System(system),
			contract.User(strings.Join(args, " ")),
		}

		answer := newDispatcher().Reply(cmd.Context(), messages)
		fmt.Fprintln(cmd.OutOrStdout(), "Bot:", answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().String("system", "", "system prompt (defaults to prompts.system)")
}
