package main

import (
	"fmt"

	"github.com/harunnryd/chatbot/internal/model"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported providers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), renderProviders(model.Providers(), cfg.Model.Provider))
		return nil
	},
}

func renderProviders(providers []model.ProviderInfo, active string) string {
	purple := lipgloss.Color("99")
	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	activeStyle := cellStyle.Foreground(lipgloss.Color("42"))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		Headers("Provider", "Default model", "Credential", "Endpoint")

	activeRow := -1
	for i, p := range providers {
		if p.Name == active {
			activeRow = i
		}
		t.Row(p.Name, p.DefaultModel, p.CredentialEnv, p.BaseURL)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row == activeRow:
			return activeStyle
		default:
			return cellStyle
		}
	})

	return t.String()
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
