package normalize

import (
	"encoding/json"
	"strings"

	"github.com/amishk599/hoyotext/internal/htmltext"
	"github.com/amishk599/hoyotext/internal/model"
)

// Shape is the structural variant of one list entry.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeKeyValue           // {key, value}: attribute lists
	ShapeKeyValues          // {key, values}: multi-value stat lists
	ShapeTitleDesc          // {title, desc}: story and voice-over entries
	ShapeNameDesc           // {name, desc}: abilities, eidolons, constellations
)

func (s Shape) String() string {
	switch s {
	case ShapeKeyValue:
		return "key/value"
	case ShapeKeyValues:
		return "key/values"
	case ShapeTitleDesc:
		return "title/desc"
	case ShapeNameDesc:
		return "name/desc"
	default:
		return "unrecognized"
	}
}

// shapeRule is matched when the entry has both members.
type shapeRule struct {
	shape          Shape
	label, content string
}

// Order matters: real entries often satisfy several rules and the first wins.
var shapeRules = []shapeRule{
	{ShapeKeyValue, "key", "value"},
	{ShapeKeyValues, "key", "values"},
	{ShapeTitleDesc, "title", "desc"},
	{ShapeNameDesc, "name", "desc"},
}

// Classify detects the shape of entry and extracts its key/value pair.
// The returned field is zero when the shape is ShapeUnrecognized.
func Classify(entry map[string]json.RawMessage) (model.Field, Shape) {
	for _, rule := range shapeRules {
		label, hasLabel := entry[rule.label]
		content, hasContent := entry[rule.content]
		if !hasLabel || !hasContent {
			continue
		}
		return model.Field{
			Key:   jsonText(label),
			Value: htmltext.FromJSON(content),
		}, rule.shape
	}
	return model.Field{}, ShapeUnrecognized
}

// jsonText renders a label member: strings are decoded, null is empty and
// anything else keeps its JSON spelling.
func jsonText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}
