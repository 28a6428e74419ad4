package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/laralog/laralog/internal/domain"
	"github.com/laralog/laralog/internal/logs"
	"github.com/laralog/laralog/internal/prefs"
	"github.com/laralog/laralog/internal/watch"
)

// tail flags
var (
	tailLevels []string
	tailGrep   string
	tailRegex  bool
	tailPlain  bool
)

// tailCmd streams reconstructed entries to stdout until interrupted
var tailCmd = &cobra.Command{
	Use:   "tail [file]",
	Short: "Stream parsed log entries to stdout",
	Long: `tail watches a Laravel log file and prints each reconstructed
entry as one colored header line plus indented body lines. It runs
until interrupted (Ctrl+C).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringSliceVar(&tailLevels, "level", nil, "Only deliver these levels (e.g. --level error,warning)")
	tailCmd.Flags().StringVar(&tailGrep, "grep", "", "Only print entries containing this text")
	tailCmd.Flags().BoolVar(&tailRegex, "regex", false, "Treat --grep as a regular expression")
	tailCmd.Flags().BoolVar(&tailPlain, "plain", false, "Disable colored output")
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	userPrefs, _ := prefs.Load(prefsPath)

	path, err := resolveLogPath(args, cfg, userPrefs)
	if err != nil {
		return err
	}

	wc, err := watchConfig(cfg)
	if err != nil {
		return err
	}

	levels, err := parseLevels(tailLevels)
	if err != nil {
		return err
	}

	filter := logs.NewSeverityFilter()
	if len(levels) > 0 {
		for _, sev := range domain.Severities {
			filter.SetEnabled(sev, false)
		}
		for _, sev := range levels {
			filter.SetEnabled(sev, true)
		}
	}

	sink := logs.NewManager(managerConfig(cfg))
	defer sink.Close()

	// The text filter runs subscription-side so the session history
	// still holds every delivered entry.
	subID, ch, err := sink.Subscribe(logs.RecordFilter{Pattern: tailGrep, IsRegex: tailRegex})
	if err != nil {
		return err
	}
	defer sink.Unsubscribe(subID)

	watcher := watch.New(sink, filter, wc)
	if err := watcher.Start(path); err != nil {
		return err
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := NewRecordPrinter(os.Stdout, !tailPlain)

	for {
		select {
		case <-ctx.Done():
			return nil
		case record := <-ch:
			printer.PrintRecord(record)
		case notice := <-watcher.Notices():
			if done := printNotice(notice); done {
				return nil
			}
		}
	}
}

// printNotice reports filesystem-level conditions on stderr. It returns
// true when the watch session has ended.
func printNotice(n watch.Notice) bool {
	switch n.Kind {
	case watch.NoticeTruncated:
		fmt.Fprintf(os.Stderr, "laralog: %s truncated; reading from the start\n", n.Path)
	case watch.NoticeReplaced:
		fmt.Fprintf(os.Stderr, "laralog: %s replaced; reading from the start\n", n.Path)
	case watch.NoticeFileMissing:
		fmt.Fprintf(os.Stderr, "laralog: %s is gone; exiting\n", n.Path)
		return true
	case watch.NoticeReadError:
		if verbose {
			fmt.Fprintf(os.Stderr, "laralog: %v\n", n.Err)
		}
	}
	return false
}

// parseLevels parses --level values; each value may carry a
// comma-separated list.
func parseLevels(tokens []string) ([]domain.Severity, error) {
	var out []domain.Severity
	for _, token := range tokens {
		for _, part := range strings.Split(token, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sev := domain.ParseSeverity(part)
			if sev == domain.SeverityUnknown {
				return nil, fmt.Errorf("unknown level %q (valid: %s)", part, levelList())
			}
			out = append(out, sev)
		}
	}
	return out, nil
}

func levelList() string {
	names := make([]string, len(domain.Severities))
	for i, sev := range domain.Severities {
		names[i] = sev.String()
	}
	return strings.Join(names, ", ")
}
