package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/hoyotext/internal/model"
)

var categoriesWiki string

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category tables",
	Long:  "Prints every known category label with its strategy and record type, after config overrides.",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().StringVar(&categoriesWiki, "wiki", "", "only list this wiki (genshin or hsr)")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	families := model.Families
	if categoriesWiki != "" {
		family, err := parseWiki(categoriesWiki)
		if err != nil {
			return err
		}
		families = []model.GameFamily{family}
	}

	for i, family := range families {
		fam, err := reg.Family(family)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%s)\n", family.DisplayName(), family)
		fmt.Printf("%-25s %-12s %s\n", "Label", "Strategy", "Type")
		fmt.Println(strings.Repeat("─", 55))
		for _, label := range fam.Categories.Labels() {
			e, _ := fam.Categories.Lookup(label)
			fmt.Printf("%-25s %-12s %s\n", label, e.Strategy, e.Type)
		}
		a := fam.Attributes
		fmt.Printf("\nAttributes: path=%s faction=%s rarity=%s combat_type=%s\n",
			a.Path, a.Faction, a.Rarity, a.CombatType)
	}
	return nil
}
