package main

import (
	"fmt"
	"os"

	"github.com/AnishMulay/sandsplit/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a default config file",
		Long:  "write a default YAML config file to path (default sandsplit.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "sandsplit.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := config.Write(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
