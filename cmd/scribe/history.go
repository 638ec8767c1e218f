package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yegors/scribe/internal/storage/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent transcripts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		if !cfg.History.Enabled {
			return fmt.Errorf("history is disabled in the config")
		}

		path, err := cfg.HistoryDatabasePath()
		if err != nil {
			return err
		}

		store, err := sqlite.New(path, log)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.GetRecent(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No transcripts recorded yet.")
			return nil
		}

		for _, r := range records {
			fmt.Printf("%4d  %s  %-7s  %6.1fs  %s\n",
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.Backend,
				r.DurationSecs,
				excerpt(r.Content, 60),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of transcripts to show")
}

// excerpt flattens a transcript to a single line capped at max runes
func excerpt(text string, max int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= max {
		return flat
	}
	return string(runes[:max]) + "..."
}
