package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	walkdir "github.com/TFMV/walkdir/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var version = "0.1.0"

// record is one walk outcome as written by the json and yaml formats.
type record struct {
	Path  string `json:"path" yaml:"path"`
	Depth int    `json:"depth" yaml:"depth"`
	Type  string `json:"type" yaml:"type"`
}

// NewRootCommand builds the walkdir command tree. Each call returns an
// independent command with its own configuration.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "walkdir [options] <path>",
		Short: "Walk a directory tree depth-first",
		Long: `walkdir walks a directory tree in pre-order and prints every entry.

Directories are read with one open listing per level, symbolic link loops
are reported instead of followed, and unreadable entries are reported on
stderr without stopping the walk.

Examples:
  walkdir /path/to/dir
  walkdir --max-depth 2 --skip-hidden /path/to/dir
  walkdir --follow-links --format json /path/to/dir
  walkdir --template "{depth} {type} {}" /path/to/dir`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cmd, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalk(cmd, v, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.walkdir.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "Disable all output except errors")

	rootCmd.Flags().Bool("follow-links", false, "Follow symbolic links to directories")
	rootCmd.Flags().Int("max-depth", walkdir.NoDepthLimit, "Maximum depth to descend (-1 for no limit)")
	rootCmd.Flags().Bool("skip-hidden", false, "Skip hidden files and directories")
	rootCmd.Flags().Bool("no-loop-detection", false, "Disable symbolic link loop detection (bound cycles with --max-depth)")
	rootCmd.Flags().StringSlice("exclude", nil, "Base name globs to exclude (comma-separated)")
	rootCmd.Flags().StringSlice("exclude-path", nil, "Full path wildcards to exclude, '*' spans separators (comma-separated)")
	rootCmd.Flags().String("exclude-regex", "", "Regular expression matched against full paths to exclude")
	rootCmd.Flags().String("format", "text", "Output format (text|json|yaml)")
	rootCmd.Flags().String("template", "", "Output template ({}, {base}, {dir}, {depth}, {type})")

	rootCmd.AddCommand(newWatchCommand(v))
	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// initConfig binds the flags of cmd to v and reads the config file and
// WALKDIR_ environment variables.
func initConfig(v *viper.Viper, cmd *cobra.Command, cfgFile string) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	v.SetEnvPrefix("WALKDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".walkdir")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// logLevel returns the log level selected by --verbose and --silent.
func logLevel(v *viper.Viper) walkdir.LogLevel {
	switch {
	case v.GetBool("verbose"):
		return walkdir.LogLevelDebug
	case v.GetBool("silent"):
		return walkdir.LogLevelError
	default:
		return walkdir.LogLevelWarn
	}
}

// walkOptions converts the bound configuration into walk options.
func walkOptions(v *viper.Viper) (walkdir.Options, error) {
	opts := walkdir.NewOptions()
	opts.FollowLinks = v.GetBool("follow-links")
	opts.NoLoopDetection = v.GetBool("no-loop-detection")
	opts.MaxDepth = v.GetInt("max-depth")
	if opts.MaxDepth < 0 {
		opts.MaxDepth = walkdir.NoDepthLimit
	}

	var filters []walkdir.Filter
	if v.GetBool("skip-hidden") {
		filters = append(filters, walkdir.SkipHidden())
	}
	if exclude := v.GetStringSlice("exclude"); len(exclude) > 0 {
		filters = append(filters, walkdir.ExcludeNames(exclude...))
	}
	if paths := v.GetStringSlice("exclude-path"); len(paths) > 0 {
		filters = append(filters, walkdir.ExcludePaths(paths...))
	}
	if expr := v.GetString("exclude-regex"); expr != "" {
		re, err := regexp.Compile(expr)
		if err != nil {
			return opts, fmt.Errorf("invalid exclude-regex: %w", err)
		}
		filters = append(filters, walkdir.ExcludeRegexp(re))
	}
	if len(filters) > 0 {
		opts.Filter = walkdir.And(filters...)
	}
	return opts, nil
}

// entryWriter writes entries in the configured output format.
type entryWriter struct {
	write func(e walkdir.Entry) error
	close func() error
}

func newEntryWriter(w io.Writer, format, template string) (*entryWriter, error) {
	noop := func() error { return nil }
	if template != "" {
		return &entryWriter{
			write: func(e walkdir.Entry) error {
				_, err := fmt.Fprintln(w, walkdir.FormatEntry(template, e))
				return err
			},
			close: noop,
		}, nil
	}

	switch format {
	case "text", "":
		return &entryWriter{
			write: func(e walkdir.Entry) error {
				_, err := fmt.Fprintln(w, e.Path())
				return err
			},
			close: noop,
		}, nil
	case "json":
		enc := json.NewEncoder(w)
		return &entryWriter{
			write: func(e walkdir.Entry) error { return enc.Encode(newRecord(e)) },
			close: noop,
		}, nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		started := false
		return &entryWriter{
			write: func(e walkdir.Entry) error {
				started = true
				return enc.Encode(newRecord(e))
			},
			// Closing a stream that never started is an emitter error.
			close: func() error {
				if !started {
					return nil
				}
				return enc.Close()
			},
		}, nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}

func newRecord(e walkdir.Entry) record {
	typ := "unknown"
	if mode, err := e.FileType(); err == nil {
		typ = walkdir.TypeName(mode)
	}
	return record{Path: e.Path(), Depth: e.Depth(), Type: typ}
}

func runWalk(cmd *cobra.Command, v *viper.Viper, root string) error {
	out, err := newEntryWriter(cmd.OutOrStdout(), v.GetString("format"), v.GetString("template"))
	if err != nil {
		return err
	}

	logger := walkdir.NewLogger(logLevel(v))
	defer logger.Sync()

	opts, err := walkOptions(v)
	if err != nil {
		return err
	}
	opts.Logger = logger
	silent := v.GetBool("silent")
	stderr := cmd.ErrOrStderr()

	var entries, failures int
	err = walkdir.Walk(root, opts, func(e walkdir.Entry, err error) error {
		if ctxErr := cmd.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			failures++
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return nil
		}
		entries++
		if silent {
			return nil
		}
		return out.write(e)
	})
	if cerr := out.close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("walk of %s finished with %d errors (%d entries)", root, failures, entries)
	}
	return nil
}
