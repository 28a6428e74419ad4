package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/laralog/laralog/internal/prefs"
)

var recentClear bool

// recentCmd lists the remembered log files
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently watched log files",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "Forget all remembered files")
}

func runRecent(cmd *cobra.Command, args []string) error {
	userPrefs, _ := prefs.Load(prefsPath)

	if recentClear {
		userPrefs.RecentFiles = nil
		return prefs.Save(prefsPath, userPrefs)
	}

	if len(userPrefs.RecentFiles) == 0 {
		fmt.Println("No recently watched files.")
		return nil
	}

	for i, path := range userPrefs.RecentFiles {
		marker := " "
		if _, err := os.Stat(path); err != nil {
			marker = "!" // no longer exists
		}
		fmt.Printf("%2d %s %s\n", i+1, marker, path)
	}
	return nil
}
