package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/coop/internal/config"
	"github.com/cleared-dev/coop/internal/cooperative"
	"github.com/cleared-dev/coop/internal/shell"
)

func newShellCommand() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive cooperative menu",
		Long: "Run the interactive cooperative menu. All state lives in memory and is\n" +
			"discarded when the session ends.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			if err := config.ApplyEnv(cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config %s: %w", configPath, err)
			}

			var opts []cooperative.Option
			if verbose {
				handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
				opts = append(opts, cooperative.WithLogger(slog.New(handler)))
			}

			coop, err := cooperative.New(cfg.Cooperative.Name, cfg.Cooperative.Address, opts...)
			if err != nil {
				return err
			}
			return shell.New(coop, cfg, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.FileName, "configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log ledger events to stderr")

	return cmd
}
