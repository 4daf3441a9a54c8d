package category

import "github.com/amishk599/hoyotext/internal/model"

func genshinTable() Table {
	return Table{
		"Characters": {Strategy: Character, Type: "Character"},

		"Adventure": {Strategy: Bare},
		"Tutorial":  {Strategy: Bare},

		"Weapons":               {Strategy: Generic},
		"Artifacts":             {Strategy: Generic},
		"Enemies and Monsters":  {Strategy: Generic},
		"Wildlife":              {Strategy: Generic},
		"Books":                 {Strategy: Generic},
		"Food":                  {Strategy: Generic},
		"Materials":             {Strategy: Generic},
		"NPC Archive":           {Strategy: Generic},
		"Furnishings":           {Strategy: Generic},
		"Domains":               {Strategy: Generic},
		"Namecards":             {Strategy: Generic},
		"Outfits":               {Strategy: Generic},
		"Genius Invokation TCG": {Strategy: Generic},
		"Events":                {Strategy: Generic},
		"Achievements":          {Strategy: Generic},
		"Glossary":              {Strategy: Generic},
	}
}

func starRailTable() Table {
	return Table{
		"Characters":        {Strategy: Character, Type: "Character"},
		"Character Archive": {Strategy: Character, Type: "Character"},

		"Adventure": {Strategy: Bare},
		"Tutorial":  {Strategy: Bare},

		"Aeons":            {Strategy: Generic},
		"Relics":           {Strategy: Generic},
		"Light Cones":      {Strategy: Generic},
		"Enemies":          {Strategy: Generic},
		"Factions":         {Strategy: Generic},
		"Items":            {Strategy: Generic},
		"Readables":        {Strategy: Generic},
		"Terminology":      {Strategy: Generic},
		"Event Archive":    {Strategy: Generic},
		"Achievements":     {Strategy: Generic},
		"Phone Wallpapers": {Strategy: Generic},
		"Glossary":         {Strategy: Generic},
	}
}

// DefaultRegistry returns a fresh registry with the built-in tables for both
// wikis. Each call returns independent maps, so overrides never leak.
func DefaultRegistry() *Registry {
	return NewRegistry(map[model.GameFamily]Family{
		model.Genshin: {
			Categories: genshinTable(),
			Attributes: AttributeKeys{
				Path:       "character_weapon",
				Faction:    "character_region",
				Rarity:     "character_rarity",
				CombatType: "character_vision",
			},
		},
		model.StarRail: {
			Categories: starRailTable(),
			Attributes: AttributeKeys{
				Path:       "character_paths",
				Faction:    "character_factions",
				Rarity:     "character_rarity",
				CombatType: "character_combat_type",
			},
		},
	})
}
