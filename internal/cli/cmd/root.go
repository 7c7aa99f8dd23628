package cmd

import (
	"fmt"
	"os"

	"github.com/o6b7/travelbond/internal/cli/client"
	"github.com/o6b7/travelbond/internal/cli/config"
	"github.com/o6b7/travelbond/internal/cli/logger"
	"github.com/o6b7/travelbond/internal/cli/output"
	"github.com/o6b7/travelbond/internal/cli/service"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "travelbond",
	Short: "TravelBond CLI - meet travellers, join trips and groups",
	Long: `TravelBond CLI is a command-line interface for the TravelBond
travel community. Browse events, groups, travellers and posts, manage
your memberships, and moderate reports from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Init(verbose)

		if !output.ValidateFormat(outputFmt) {
			return fmt.Errorf("unknown output format %q (use text or json)", outputFmt)
		}
		config.Set("output.format", outputFmt)

		client.Init()
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/travelbond/cli/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(versionCmd)
}

// addDisclosureFlags registers --initial, --step and --all on a list command
func addDisclosureFlags(cmd *cobra.Command) {
	cmd.Flags().Int("initial", 3, "Items shown before the first [m]ore (default from config)")
	cmd.Flags().Int("step", 3, "Items each [m]ore reveals (default from config)")
	cmd.Flags().Bool("all", false, "Print the whole list without prompting")
}

// browseOptions reads the disclosure flags, falling back to the config file
func browseOptions(cmd *cobra.Command) service.BrowseOptions {
	opts := service.BrowseOptions{
		Initial: config.GetInt("disclosure.initial"),
		Step:    config.GetInt("disclosure.step"),
	}
	if cmd.Flags().Changed("initial") {
		opts.Initial, _ = cmd.Flags().GetInt("initial")
	}
	if cmd.Flags().Changed("step") {
		opts.Step, _ = cmd.Flags().GetInt("step")
	}
	opts.All, _ = cmd.Flags().GetBool("all")
	return opts
}
