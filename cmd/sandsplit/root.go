package main

import (
	"github.com/AnishMulay/sandsplit/internal/command"
	"github.com/AnishMulay/sandsplit/internal/config"
	"github.com/AnishMulay/sandsplit/internal/sandsplit"
	"github.com/spf13/cobra"
)

const version = "1.0"

type rootOptions struct {
	split      string
	join       string
	size       string
	output     string
	verify     bool
	digest     string
	configPath string
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sandsplit",
		Short: "Split large files into numbered chunks and join them back",
		Long: `Split a large file into fixed-size chunks named <file>.001, <file>.002, ...
and join such a chunk set back into the original file.

  sandsplit --split big.iso --size 100MB [--output dir] [--verify]
  sandsplit --join big.iso.001 [--output dir] [--verify]`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootRun(cmd, opts)
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	cmd.Flags().StringVarP(&opts.split, "split", "s", "", "file to split")
	cmd.Flags().StringVarP(&opts.join, "join", "j", "", "first chunk of the set to join (the .001 file)")
	cmd.Flags().StringVarP(&opts.size, "size", "b", "", "chunk size for split, e.g. 500KB, 100MB, 4GB")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: next to the input)")
	cmd.Flags().BoolVarP(&opts.verify, "verify", "m", false, "print the whole-file checksum before splitting or after joining")
	cmd.Flags().StringVar(&opts.digest, "digest", "", "checksum algorithm: md5 or sha256 (default md5)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")
	cmd.Flags().StringVarP(&opts.logFile, "log", "l", "", "log location: stderr or a file path (default stderr)")

	cmd.AddCommand(newConfigCmd())

	return cmd
}

func rootRun(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return usageError{err: err}
	}

	req := command.Request{
		SplitPath: opts.split,
		JoinPath:  opts.join,
		Size:      pick(opts.size, cfg.Split.Size),
		OutputDir: opts.output,
		Verify:    opts.verify || cfg.Verify,
	}
	if req.OutputDir == "" {
		if req.JoinPath != "" {
			req.OutputDir = cfg.Join.Output
		} else {
			req.OutputDir = cfg.Split.Output
		}
	}

	c, err := command.Build(req)
	if err != nil {
		return usageError{err: err}
	}

	tool, err := sandsplit.Build(sandsplit.Options{
		Digest:      pick(opts.digest, cfg.Digest),
		BufferSize:  cfg.BufferSize,
		LogLevel:    pick(opts.logLevel, cfg.Log.Level),
		LogLocation: pick(opts.logFile, cfg.Log.Location),
	})
	if err != nil {
		return err
	}
	defer tool.Close()

	return command.Run(tool.Files, c, cmd.OutOrStdout())
}

// pick returns the flag value when it was given, otherwise the configured one.
func pick(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}
