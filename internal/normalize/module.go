package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/amishk599/hoyotext/internal/htmltext"
	"github.com/amishk599/hoyotext/internal/model"
)

// placeholderEntry stands in for a list member that is present but null.
var placeholderEntry = map[string]json.RawMessage{
	"key":   json.RawMessage(`""`),
	"value": json.RawMessage(`[""]`),
}

// NormalizeModule turns one raw module into a module record. It returns nil
// without error when the module carries nothing usable, and wraps
// model.ErrMalformedPayload when the embedded JSON does not parse.
func (n *Normalizer) NormalizeModule(m model.RawModule) (*model.ModuleRecord, error) {
	if m.Name == "" {
		n.logger.Debug("empty module name, assuming no data is present")
		return nil, nil
	}
	payload := m.Payload()
	if payload == "" {
		n.logger.Debug("module is empty, skipping", "module", m.Name)
		return nil, nil
	}

	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("module %q: %w", m.Name, model.ErrMalformedPayload)
	}

	var container map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &container); err != nil {
		n.logger.Debug("module payload is not an object, skipping", "module", m.Name)
		return nil, nil
	}

	rec := &model.ModuleRecord{Name: m.Name, Fields: []model.Field{}}

	if list, ok := container["list"]; ok {
		for _, entry := range n.entries(m.Name, list) {
			field, shape := Classify(entry)
			if shape == ShapeUnrecognized {
				n.logger.Debug("entry has no recognized shape, skipping", "module", m.Name)
				continue
			}
			rec.Fields = append(rec.Fields, field)
		}
		return rec, nil
	}

	if data, ok := container["data"]; ok {
		var html *string
		if err := json.Unmarshal(data, &html); err != nil || html == nil {
			n.logger.Debug("module data is not a string, skipping", "module", m.Name)
			return nil, nil
		}
		rec.Fields = append(rec.Fields, model.Field{Key: "", Value: htmltext.Text(*html)})
		return rec, nil
	}

	n.logger.Debug("module has neither list nor data, skipping", "module", m.Name)
	return nil, nil
}

// entries decodes a list member. A null list becomes a single placeholder;
// elements that are not objects are dropped.
func (n *Normalizer) entries(module string, list json.RawMessage) []map[string]json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(list, &items); err != nil {
		n.logger.Debug("module list is not an array", "module", module)
		return nil
	}
	if items == nil {
		return []map[string]json.RawMessage{placeholderEntry}
	}

	out := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(item, &entry); err != nil || entry == nil {
			n.logger.Debug("list entry is not an object, skipping", "module", module)
			continue
		}
		out = append(out, entry)
	}
	return out
}
