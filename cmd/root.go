package cmd

import (
	"context"
	"fmt"
	"os"

	"shopdesk/internal/app"
	"shopdesk/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "shopdesk",
	Short: "Shopdesk inventory admin backend",
	Long: `Shopdesk serves and edits a product table stored in a single CSV file.
It exposes filtering, sorting and pagination over products and derives a
category tree from the category paths stored on each row.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is given, print help.
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == cobra.ShellCompRequestCmd {
			return nil
		}

		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		appInstance, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(context.WithValue(ctx, appKey, appInstance))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext returns the app built by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./config.yaml or ~/.shopdesk/config.yaml)")

	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the product CSV is readable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		fmt.Fprintf(out, "Store: %s\n", appInstance.StorePath)
		if _, err := os.Stat(appInstance.StorePath); os.IsNotExist(err) {
			fmt.Fprintf(out, "  %s file does not exist yet, it will be created on first write\n", color.YellowString("WARN"))
		}

		if err := appInstance.Ping(ctx); err != nil {
			fmt.Fprintf(out, "  %s %v\n", color.RedString("FAIL"), err)
			return fmt.Errorf("store check failed: %w", err)
		}

		records, err := appInstance.RecordStore.LoadAll(ctx)
		if err != nil {
			fmt.Fprintf(out, "  %s %v\n", color.RedString("FAIL"), err)
			return fmt.Errorf("store check failed: %w", err)
		}
		fmt.Fprintf(out, "  %s %d rows readable\n", color.GreenString("OK"), len(records))
		return nil
	},
}
