package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/config"
	"github.com/relcut/relcut/internal/history"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "View recorded release runs",
	Long:         `Lists recorded release runs, newest first: transition, version change, tag and push outcome. With --follow the history file is watched and new runs print as they land.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryWithStateDir(cmd, config.DefaultStateDir())
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("follow", "f", false, "Watch the history file and print new runs")
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().BoolP("clear", "c", false, "Clear all history")
}

// runHistoryWithStateDir runs the history command against a state directory.
func runHistoryWithStateDir(cmd *cobra.Command, stateDir string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	follow, _ := cmd.Flags().GetBool("follow")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	if clearFlag {
		if err := history.Clear(stateDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.Load(stateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := limitEntries(histFile.Entries, limit)
	if len(entries) == 0 && !follow {
		fmt.Fprintln(cmd.OutOrStdout(), "No history available.")
		return nil
	}

	// Newest first for the static listing.
	for i := len(entries) - 1; i >= 0; i-- {
		displayEntry(cmd, entries[i])
	}

	if !follow {
		return nil
	}
	return followHistory(cmd, stateDir)
}

// followHistory watches the history file and prints appended entries until
// interrupted.
func followHistory(cmd *cobra.Command, stateDir string) error {
	follower, err := history.NewFollower(stateDir)
	if err != nil {
		return fmt.Errorf("watching history: %w", err)
	}
	defer follower.Close()

	entries, err := follower.Follow(cmd.Context())
	if err != nil {
		return err
	}

	for entry := range entries {
		displayEntry(cmd, entry)
	}
	return nil
}

// limitEntries keeps the most recent limit entries.
func limitEntries(entries []history.Entry, limit int) []history.Entry {
	if limit > 0 && len(entries) > limit {
		return entries[len(entries)-limit:]
	}
	return entries
}

// displayEntry formats one release run line.
func displayEntry(cmd *cobra.Command, entry history.Entry) {
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	pushed := "local"
	if entry.Pushed {
		pushed = green("pushed")
	}

	change := entry.After
	if entry.Before != entry.After {
		change = fmt.Sprintf("%s -> %s", entry.Before, entry.After)
	}

	tag := entry.Tag
	if tag == "" {
		tag = "-"
	}
	if !entry.Pushed && entry.Tag != "" {
		tag = red(tag)
	}

	fmt.Fprintf(out, "%s  %-11s  %-22s  tag=%s  %s\n",
		cyan(entry.Timestamp.Format("2006-01-02 15:04:05")),
		entry.Transition,
		change,
		tag,
		pushed,
	)
}
