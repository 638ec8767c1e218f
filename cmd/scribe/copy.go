package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yegors/scribe/internal/clipboard"
	"github.com/yegors/scribe/internal/pipeline"
	"github.com/yegors/scribe/internal/storage/sqlite"
)

var copyCmd = &cobra.Command{
	Use:   "copy [id]",
	Short: "Copy a stored transcript back to the clipboard",
	Long: `Copy places a transcript from history back on the clipboard.
With no ID the most recent transcript is used; IDs are shown by
"scribe history".`,
	Args: cobra.MaximumNArgs(1),
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

		var record *sqlite.TranscriptRecord
		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transcript ID %q: %w", args[0], err)
			}
			record, err = store.GetByID(id)
			if err != nil {
				return err
			}
		} else {
			record, err = store.GetLatest()
			if err != nil {
				return err
			}
		}

		clip, err := clipboard.NewCommand(cfg.Clipboard, log)
		if err != nil {
			return err
		}
		if err := clip.Copy(cmd.Context(), record.Content); err != nil {
			return &pipeline.ClipboardError{Err: err}
		}

		fmt.Printf("Copied transcript %d to clipboard.\n", record.ID)
		return nil
	},
}
