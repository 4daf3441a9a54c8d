package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/hoyotext/internal/model"
	"github.com/amishk599/hoyotext/internal/viewer"
)

const viewFetchTimeout = 2 * time.Minute

var (
	viewWiki  string
	viewID    int
	viewLimit int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse a record interactively (TUI)",
	Long:  "With --id, fetches the page behind a spinner and opens the record browser. Without --id, picks a record from the archive.",
	RunE:  runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewWiki, "wiki", "", "wiki to query (genshin or hsr)")
	viewCmd.Flags().IntVar(&viewID, "id", 0, "entry page id; omit to pick from the archive")
	viewCmd.Flags().IntVar(&viewLimit, "limit", 50, "archived records to offer in the picker")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Any log output before the alt-screen starts corrupts the display.
	silentLogger := discardLogger()

	var family model.GameFamily
	if viewWiki != "" || viewID > 0 {
		if family, err = parseWiki(viewWiki); err != nil {
			return err
		}
	}

	archive, closeArchive, err := openArchive(cfg, silentLogger)
	if err != nil {
		return err
	}
	defer closeArchive()

	if viewID <= 0 {
		if !cfg.Archive.Enabled {
			return fmt.Errorf("--id is required when archive.enabled is false")
		}
		return browseArchive(archive, family)
	}

	s, err := buildScraper(cfg, archive, silentLogger)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("%s page %d", family.DisplayName(), viewID)
	records, err := viewer.RunLoader(label, viewFetchTimeout, func(ctx context.Context) ([]model.CanonicalRecord, error) {
		return s.Scrape(ctx, family, viewID)
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no record for %s page %d", family, viewID)
	}
	_, err = viewer.RunBrowser(records[0])
	return err
}

// browseArchive loops picker → browser until the user quits.
func browseArchive(archive model.RecordArchive, family model.GameFamily) error {
	items, err := archive.List(context.Background(), family, viewLimit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No archived records.")
		return nil
	}

	for {
		choice, err := viewer.RunRecordPicker(items)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		if choice < 0 {
			return nil
		}
		wantQuit, err := viewer.RunBrowser(items[choice].Record)
		if err != nil {
			return fmt.Errorf("browser: %w", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}
