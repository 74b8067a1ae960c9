package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	walkdir "github.com/TFMV/walkdir/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newWatchCommand builds the watch subcommand. Its flags are read through v,
// so they can also be set from the config file or environment.
func newWatchCommand(v *viper.Viper) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch for filesystem changes",
		Long: `Watch for filesystem changes and print one line per event.

Examples:
  walkdir watch /path/to/watch
  walkdir watch --events=create,modify /path/to/watch
  walkdir watch --pattern="*.go" --recursive /path/to/watch
  walkdir watch --timeout 30m /path/to/watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, v, args)
		},
	}

	watchCmd.Flags().StringSlice("events", nil, "Events to watch for (create, modify, delete, rename, chmod)")
	watchCmd.Flags().Bool("recursive", false, "Watch subdirectories recursively")
	watchCmd.Flags().Bool("follow-links", false, "Follow symbolic links to directories when watching recursively")
	watchCmd.Flags().String("pattern", "", "File pattern to match (e.g., *.go)")
	watchCmd.Flags().String("ignore", "", "File pattern to ignore")
	watchCmd.Flags().Bool("skip-hidden", true, "Skip hidden files and directories")
	watchCmd.Flags().Duration("timeout", 0, "Duration to watch before exiting (e.g., 1h, 30m)")
	return watchCmd
}

func runWatch(cmd *cobra.Command, v *viper.Viper, args []string) error {
	watchDir := "."
	if len(args) > 0 {
		watchDir = args[0]
	} else if wd, err := os.Getwd(); err == nil {
		watchDir = wd
	}

	events, err := walkdir.ParseWatchEvents(v.GetStringSlice("events"))
	if err != nil {
		return err
	}

	logger := walkdir.NewLogger(logLevel(v))
	defer logger.Sync()

	opts := walkdir.WatchOptions{
		Events:        events,
		Recursive:     v.GetBool("recursive"),
		FollowLinks:   v.GetBool("follow-links"),
		Pattern:       v.GetString("pattern"),
		IgnorePattern: v.GetString("ignore"),
		IncludeHidden: !v.GetBool("skip-hidden"),
		Timeout:       v.GetDuration("timeout"),
		Logger:        logger,
	}

	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	silent := v.GetBool("silent")
	if !silent {
		fmt.Fprintf(out, "Watching %s for changes...\n", watchDir)
	}

	err = walkdir.Watch(cmd.Context(), watchDir, opts, func(ctx context.Context, result walkdir.WatchResult) error {
		if result.Error != nil {
			fmt.Fprintf(stderr, "Error: %v\n", result.Error)
			return nil
		}
		if !silent {
			fmt.Fprintf(out, "%s: %s\n", strings.ToUpper(string(result.Message.Event)), result.Message.Path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error watching directory: %w", err)
	}
	return nil
}
