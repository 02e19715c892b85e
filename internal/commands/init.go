package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/coop/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string
	var address string
	var threshold string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a coop.yaml configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default(name, address)
			if threshold != "" {
				t, err := decimal.NewFromString(threshold)
				if err != nil {
					return fmt.Errorf("parsing --threshold %q: %w", threshold, err)
				}
				cfg.Reports.BalanceThreshold = t
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path, err := runInit(absDir, cfg, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s for %s\n", path, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "cooperative name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&address, "address", "", "cooperative address (required)")
	_ = cmd.MarkFlagRequired("address")
	cmd.Flags().StringVar(&threshold, "threshold", "", "balance threshold for the accounts report (default 500000)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")

	return cmd
}

func runInit(dir string, cfg *config.Config, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	if err := config.Save(path, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
