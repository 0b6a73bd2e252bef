package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"verdandi/internal/config"
	"verdandi/internal/remind"

	"github.com/spf13/cobra"
)

var (
	remindFile string
	dateFlag   string
	watchMode  bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "verdandi",
	Short: "A schedule viewer for the remind calendar system",
	Long: `Verdandi renders a month agenda from the remind calendar system,
keeping a rolling three-month window of parsed reminders.`,
	RunE: runAgenda,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&remindFile, "file", "f", "", "Remind file to use instead of the configured one")
	rootCmd.PersistentFlags().StringVarP(&dateFlag, "date", "d", "", "Date to use instead of today (YYYY-MM-DD)")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-render the agenda when the reminders file changes")
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if remindFile != "" {
		cfg.RemindersFile = remindFile
	}
}

func newClient() *remind.Client {
	client := remind.NewClient(cfg.RemindCommand, cfg.RemindersFile)
	if err := client.CheckRemind(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please ensure 'remind' is installed and in your PATH\n")
	}
	return client
}

func windowOptions() remind.WindowOptions {
	return remind.WindowOptions{
		Location:        time.Local,
		BusyAlgorithm:   cfg.BusyAlgorithm,
		UntimedDuration: cfg.UntimedDuration,
	}
}

// targetDate resolves the --date flag, defaulting to now.
func targetDate() (time.Time, error) {
	if dateFlag == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", dateFlag, err)
	}
	return t, nil
}

func runAgenda(cmd *cobra.Command, args []string) error {
	date, err := targetDate()
	if err != nil {
		return err
	}

	client := newClient()
	win, err := remind.NewWindow(client, windowOptions(), date)
	if err != nil {
		return err
	}
	printAgenda(win)

	if !watchMode {
		return nil
	}

	files, err := remind.ListIncludedFiles(cfg.RemindersFile)
	if err != nil {
		return err
	}

	changes := make(chan string, 1)
	watcher, err := remind.WatchFiles(files, func(path string) {
		select {
		case changes <- path:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	for {
		select {
		case <-changes:
			refreshed, err := win.Refresh()
			if err != nil {
				return err
			}
			win = refreshed
			fmt.Println()
			printAgenda(win)
		case <-interrupt:
			return nil
		}
	}
}
