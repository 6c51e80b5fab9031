package main

import (
	"fmt"
	"os"

	"github.com/mesaviva/menurag/internal/cli"
	"github.com/mesaviva/menurag/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "menurag",
		Short: "Menurag CLI - restaurant menu Q&A",
		Long: `Menurag CLI provides commands to query the menu knowledge base.

Environment variables:
  MENURAG_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.ChatCmd())
	rootCmd.AddCommand(client.DishesCmd())
	rootCmd.AddCommand(client.HealthCmd())
	rootCmd.AddCommand(client.SeedCmd())
	rootCmd.AddCommand(client.IndexCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
