package scheduler

import (
	"slices"

	"github.com/amishk599/hoyotext/internal/model"
)

// Diff lists what differs between two records of the same page: top-level
// members by JSON name, then module names in the order they appear in cur
// (names whose modules were removed follow). Each name is listed once.
func Diff(prev, cur model.CanonicalRecord) []string {
	var changed []string
	add := func(name string, a, b string) {
		if a != b {
			changed = append(changed, name)
		}
	}
	add("type", prev.Type, cur.Type)
	add("name", prev.Name, cur.Name)
	add("description", prev.Description, cur.Description)
	add("path", prev.Path, cur.Path)
	add("faction", prev.Faction, cur.Faction)
	add("rarity", prev.Rarity, cur.Rarity)
	add("combat_type", prev.CombatType, cur.CombatType)

	// Names may repeat on a page, so the n-th module called X is compared
	// with the n-th module called X in prev.
	old := make(map[string][][]model.Field, len(prev.Modules))
	for _, m := range prev.Modules {
		old[m.Name] = append(old[m.Name], m.Fields)
	}
	listed := make(map[string]bool)
	mark := func(name string) {
		if !listed[name] {
			listed[name] = true
			changed = append(changed, name)
		}
	}
	count := make(map[string]int, len(cur.Modules))
	for _, m := range cur.Modules {
		i := count[m.Name]
		count[m.Name]++
		if i >= len(old[m.Name]) || !slices.Equal(old[m.Name][i], m.Fields) {
			mark(m.Name)
		}
	}
	for _, m := range prev.Modules {
		if count[m.Name] < len(old[m.Name]) {
			mark(m.Name)
		}
	}
	return changed
}
