// Package normalize turns HoYoLAB wiki pages into canonical plain-text records.
//
// The work is pure: a Normalizer performs no I/O, keeps no state between
// calls, and the same page always yields the same record.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/amishk599/hoyotext/internal/category"
	"github.com/amishk599/hoyotext/internal/htmltext"
	"github.com/amishk599/hoyotext/internal/model"
)

// Normalizer dispatches pages to a strategy by category label.
type Normalizer struct {
	registry *category.Registry
	logger   *slog.Logger
}

// NewNormalizer creates a normalizer over the given category tables. A nil
// logger discards the diagnostics about skipped modules and entries.
func NewNormalizer(registry *category.Registry, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Normalizer{registry: registry, logger: logger}
}

// NormalizeEnvelope normalizes the page inside an API envelope. The result
// always holds exactly one record.
func (n *Normalizer) NormalizeEnvelope(env model.Envelope, family model.GameFamily) ([]model.CanonicalRecord, error) {
	raw := bytes.TrimSpace(env.Data.Page)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("data.page is missing or not an object: %w", model.ErrMalformedInput)
	}

	var page model.RawPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decoding data.page: %v: %w", err, model.ErrMalformedInput)
	}

	rec, err := n.Normalize(page, family)
	if err != nil {
		return nil, err
	}
	return []model.CanonicalRecord{rec}, nil
}

// Normalize builds the canonical record for page. Every category label
// yields a record; labels missing from the family's table keep only the
// description and use the raw label as type.
func (n *Normalizer) Normalize(page model.RawPage, family model.GameFamily) (model.CanonicalRecord, error) {
	fam, err := n.registry.Family(family)
	if err != nil {
		return model.CanonicalRecord{}, err
	}

	rec := model.CanonicalRecord{
		Type:        page.MenuName,
		Name:        page.Name,
		Description: htmltext.Text(page.Desc),
	}

	entry, ok := fam.Categories.Lookup(page.MenuName)
	if !ok {
		n.logger.Debug("unmapped category, keeping description only",
			"category", page.MenuName, "page", page.Name)
		return rec, nil
	}
	rec.Type = entry.Type

	switch entry.Strategy {
	case category.Bare:
		return rec, nil
	case category.Generic:
		rec.Modules, err = n.modules(page.Modules)
	case category.Character:
		rec.Modules, err = n.modules(page.Modules)
		rec.Path = attribute(page, fam.Attributes.Path)
		rec.Faction = attribute(page, fam.Attributes.Faction)
		rec.Rarity = attribute(page, fam.Attributes.Rarity)
		rec.CombatType = attribute(page, fam.Attributes.CombatType)
	default:
		return model.CanonicalRecord{}, fmt.Errorf("category %q: unknown strategy %q", page.MenuName, entry.Strategy)
	}
	if err != nil {
		return model.CanonicalRecord{}, fmt.Errorf("page %q: %w", page.Name, err)
	}
	return rec, nil
}

func (n *Normalizer) modules(raw []model.RawModule) ([]model.ModuleRecord, error) {
	out := make([]model.ModuleRecord, 0, len(raw))
	for _, m := range raw {
		rec, err := n.NormalizeModule(m)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// attribute reads the first value of a filter_values member.
func attribute(page model.RawPage, key string) string {
	fv, ok := page.FilterValues[key]
	if !ok || len(fv.Values) == 0 {
		return ""
	}
	return htmltext.Text(fv.Values[0])
}
