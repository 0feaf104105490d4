// Package challenge detects anti-bot interstitial pages that a search
// engine serves instead of real content.
package challenge

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SorryPathMarker appears in the URL of Google's challenge pages
const SorryPathMarker = "/sorry/"

// Phrases shown on challenge pages. Matched against the page's visible text.
// Localized variants exist; these cover the English defaults.
var Phrases = []string{
	"I'm not a robot",
	"Our systems have detected unusual traffic",
}

// Detect reports whether the page at pageURL with content doc is a
// challenge interstitial. Pure; never errors.
func Detect(pageURL string, doc *goquery.Document) bool {
	if strings.Contains(pageURL, SorryPathMarker) {
		return true
	}

	text := doc.Find("body").Text()
	for _, phrase := range Phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}

	return false
}

// FromHTML parses the page content from r and runs Detect. An inspection
// failure (unreadable or unparseable content) is reported as an error
// rather than silently mapped to "no challenge" - the caller decides the
// safe default.
func FromHTML(pageURL string, r io.Reader) (bool, error) {
	// The URL marker alone is decisive; don't let a broken document mask
	// an obvious challenge.
	if strings.Contains(pageURL, SorryPathMarker) {
		return true, nil
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return false, fmt.Errorf("inspect page content: %w", err)
	}

	return Detect(pageURL, doc), nil
}
