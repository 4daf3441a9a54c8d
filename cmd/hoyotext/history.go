package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/hoyotext/internal/filter"
	"github.com/amishk599/hoyotext/internal/model"
)

var (
	historyWiki  string
	historyLimit int
	historyTypes []string
	historyNames []string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived records",
	Long:  "Reads the archive and prints a table of the most recently scraped records.",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyWiki, "wiki", "", "only list this wiki (genshin or hsr)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum records to list (0 = all)")
	historyCmd.Flags().StringSliceVar(&historyTypes, "type", nil, "only list records of these types")
	historyCmd.Flags().StringSliceVar(&historyNames, "name", nil, "only list records whose name contains one of these keywords")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Archive.Enabled {
		return errors.New("archive is disabled; set archive.enabled: true in config.yaml")
	}

	var family model.GameFamily
	if historyWiki != "" {
		if family, err = parseWiki(historyWiki); err != nil {
			return err
		}
	}

	archive, closeArchive, err := openArchive(cfg, discardLogger())
	if err != nil {
		return err
	}
	defer closeArchive()

	// Filter before limiting so --limit counts matching records.
	items, err := archive.List(context.Background(), family, 0)
	if err != nil {
		return err
	}
	items = filter.NewRecordFilter(historyTypes, historyNames).Archived(items)
	if historyLimit > 0 && len(items) > historyLimit {
		items = items[:historyLimit]
	}

	fmt.Printf("%-8s %-10s %-30s %-20s %s\n", "Wiki", "Page", "Name", "Type", "Scraped")
	fmt.Println(strings.Repeat("─", 90))
	for _, it := range items {
		fmt.Printf("%-8s %-10d %-30s %-20s %s\n",
			it.Family, it.PageID, truncate(it.Record.Name, 30), truncate(it.Record.Type, 20),
			it.ScrapedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Printf("\nTotal: %d records\n", len(items))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
