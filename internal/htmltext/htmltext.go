// Package htmltext flattens the HTML snippets embedded in HoYoLAB JSON into plain text.
package htmltext

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	paragraphBreakRegex = regexp.MustCompile(`</p><p>`)
	inlineTagRegex      = regexp.MustCompile(`</?(p|strong)>`)
)

// Text converts one HTML string to plain text. Paragraph and strong tags are
// replaced by a space so adjacent words do not run together; everything else
// goes through the sanitizer and the document's body text is returned.
func Text(html string) string {
	if html == "" {
		return ""
	}
	modified := inlineTagRegex.ReplaceAllString(html, " ")
	return strings.TrimSpace(bodyText(sanitize(modified)))
}

// Fragments converts an array of HTML fragments to plain text. Only the first
// fragment is used; its paragraphs are joined with a single space.
func Fragments(frags []string) string {
	if len(frags) == 0 {
		return ""
	}
	joined := paragraphBreakRegex.ReplaceAllString(frags[0], " ")
	stripped := inlineTagRegex.ReplaceAllString(joined, "")
	clean := strings.TrimSpace(sanitize(stripped))
	return strings.TrimSpace(bodyText(clean))
}

// FromJSON extracts text from an undecoded JSON value that is either an HTML
// string or an array of HTML fragments. Any other JSON value yields "".
func FromJSON(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return Text(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		frags := make([]string, len(items))
		for i, item := range items {
			// non-string fragments count as empty
			_ = json.Unmarshal(item, &frags[i])
		}
		return Fragments(frags)
	default:
		return ""
	}
}

// sanitize drops scripts and unsafe markup but keeps the text.
func sanitize(html string) string {
	return bluemonday.UGCPolicy().Sanitize(html)
}

// bodyText parses html as a full document and renders its body text.
// A parse failure yields "".
func bodyText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return doc.Find("body").Text()
}
