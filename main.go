package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"inputfetcher/internal/config"
	"inputfetcher/internal/coordinator"
	"inputfetcher/internal/input"
	"inputfetcher/internal/store"
)

const maxDay = 255

type options struct {
	configPath string
	verbose    bool
}

func main() {
	// Cancel in-flight requests on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "inputfetcher",
		Short:         "Fetch and cache per-day puzzle inputs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	bindFlags(root.PersistentFlags(), opts)

	root.AddCommand(
		newGetCmd(opts),
		newPathCmd(opts),
		newWarmCmd(opts),
	)
	return root
}

func bindFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.configPath, "config", "c", "config.toml", "path to config file (empty searches ./config.toml and ~/.config/inputfetcher)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get DAY",
		Short: "Print the input for DAY, fetching it on a cache miss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}

			f, err := input.Open(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to open input fetcher: %w", err)
			}
			defer f.Close()

			content, err := f.Get(cmd.Context(), day)
			if err != nil {
				return fmt.Errorf("failed to get input for day %d: %w", day, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
}

func newPathCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "path DAY",
		Short: "Print the local cache path for DAY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.EntryPath(cfg.CachePath, day))
			return nil
		},
	}
}

func newWarmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "warm FROM TO",
		Short: "Fetch and cache every day from FROM to TO inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDay(args[0])
			if err != nil {
				return err
			}
			to, err := parseDay(args[1])
			if err != nil {
				return err
			}
			if from > to {
				return fmt.Errorf("FROM (%d) must not be after TO (%d)", from, to)
			}

			f, err := input.Open(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to open input fetcher: %w", err)
			}
			defer f.Close()

			days := make([]int, 0, to-from+1)
			for d := from; d <= to; d++ {
				days = append(days, d)
			}

			failed, err := coordinator.New(f, days).Run(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d days failed", failed, len(days))
			}
			return nil
		},
	}
}

func parseDay(arg string) (int, error) {
	day, err := cast.ToIntE(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid day %q: %w", arg, err)
	}
	if day < 1 || day > maxDay {
		return 0, fmt.Errorf("day %d out of range 1..%d", day, maxDay)
	}
	return day, nil
}
