package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/harunnryd/chatbot/internal/chat"
	"github.com/harunnryd/chatbot/internal/config"
	"github.com/harunnryd/chatbot/internal/logger"
	"github.com/harunnryd/chatbot/internal/model/contract"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "Send a conversation to a hosted chat model and print the reply",
	Long: `chatbot sends an ordered list of chat messages to a chat-completion API and prints the reply.
Run without a sub-command it asks the configured default question.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd)
		if err != nil {
			return err
		}

		log, err = logger.Setup(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			log.Warn("Falling back to stderr logging", "file", cfg.Log.File, "error", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		messages := []contract.Message{
			contract.System(cfg.Prompts.System),
			contract.User(cfg.Prompts.User),
		}

		answer := newDispatcher().Reply(cmd.Context(), messages)
		fmt.Fprintln(cmd.OutOrStdout(), "Bot:", answer)
		return nil
	},
}

func newDispatcher() *chat.Dispatcher {
	return chat.NewDispatcher(cfg.Model, chat.WithLogger(log))
}

func Execute() {
	signals := NewSignalHandler(context.Background())
	signals.Start()
	os.Exit(run(signals))
}

// run executes the root command and stops signals before returning the exit code.
func run(signals *SignalHandler) int {
	defer signals.Stop()

	if err := rootCmd.ExecuteContext(signals.Context()); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chatbot/config.yaml)")
	rootCmd.PersistentFlags().String("log.level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log.file", "", "write JSON logs to this rotating file instead of stderr")
	rootCmd.PersistentFlags().String("model.provider", config.DefaultModelProvider, "provider (openai, ollama, anthropic, gemini)")
	rootCmd.PersistentFlags().String("model.name", "", "model identifier (default: gpt-4o-mini, or the provider's own default)")
	rootCmd.PersistentFlags().Float64("model.temperature", config.DefaultModelTemperature, "sampling temperature")
	rootCmd.PersistentFlags().String("model.base_url", "", "override the provider endpoint")
}
