package model

// Field is one plain-text key/value pair extracted from a module entry.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ModuleRecord is a normalized page module.
type ModuleRecord struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// CanonicalRecord is the schema-uniform output for one wiki page.
// Path, Faction, Rarity and CombatType are only set for character pages.
type CanonicalRecord struct {
	Type        string         `json:"type" yaml:"type"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Modules     []ModuleRecord `json:"modules,omitempty" yaml:"modules,omitempty"`
	Path        string         `json:"path,omitempty" yaml:"path,omitempty"`
	Faction     string         `json:"faction,omitempty" yaml:"faction,omitempty"`
	Rarity      string         `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	CombatType  string         `json:"combat_type,omitempty" yaml:"combat_type,omitempty"`
}
