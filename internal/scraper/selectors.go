package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/ukdirectory/internal/textutil"
)

// Rule locates one piece of listing content. Selector is a CSS path scoped
// to the listing container; when Attr is set, the attribute value is read
// instead of the element text.
//
// Rules are declared in ordered chains per field: the first rule that yields
// non-empty content wins. The chains accommodate directories with multiple
// markup versions live at once (legacy vs. redesigned templates).
type Rule struct {
	Selector string
	Attr     string
}

// FirstMatch tries each rule in order and returns the first non-empty value,
// whitespace-normalized.
func FirstMatch(s *goquery.Selection, rules ...Rule) string {
	for _, r := range rules {
		if r.Selector == "" {
			continue
		}

		el := s.Find(r.Selector).First()
		if el.Length() == 0 {
			continue
		}

		var value string
		if r.Attr != "" {
			value = el.AttrOr(r.Attr, "")
		} else {
			value = el.Text()
		}

		if value = textutil.NormalizeText(value); value != "" {
			return value
		}
	}

	return ""
}

// JoinedMatches collects the normalized text of every element matched by a
// rule, joined with sep. Rules are tried in order; the first rule matching
// any element wins. Used for multi-valued fields such as category lists.
func JoinedMatches(s *goquery.Selection, sep string, rules ...Rule) string {
	for _, r := range rules {
		if r.Selector == "" {
			continue
		}

		var parts []string
		s.Find(r.Selector).Each(func(_ int, el *goquery.Selection) {
			if text := textutil.NormalizeText(el.Text()); text != "" {
				parts = append(parts, text)
			}
		})

		if len(parts) > 0 {
			return strings.Join(parts, sep)
		}
	}

	return ""
}
