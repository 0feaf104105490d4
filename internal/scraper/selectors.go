package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Google SERP selectors.
// These are isolated here because Google changes its markup frequently.
// Update these when scraping breaks.

// Selector pairs a raw CSS selector with its precompiled matcher so an
// invalid selector fails at startup instead of mid-scrape.
type Selector struct {
	Raw     string
	matcher goquery.Matcher
}

func mustSelector(raw string) Selector {
	return Selector{Raw: raw, matcher: cascadia.MustCompile(raw)}
}

// OrganicChain lists organic-result selectors in priority order. Earlier
// entries are more precise; the last is a desperate catch-all.
var OrganicChain = []Selector{
	mustSelector(`div.yuRUbf > a`),  // typical organic container
	mustSelector(`div.g a`),         // alternate organic container
	mustSelector(`h3 > a`),          // h3 anchor
	mustSelector(`article h3 a`),    // news-like blocks
	mustSelector(`a[href^='http']`), // fallback: any http anchor
}

// NewsChain lists selectors for the News tab listing
var NewsChain = []Selector{
	mustSelector(`article h3 a`),
	mustSelector(`div.SoaBEf a`), // older news cards
	mustSelector(`div.NiLAwe a`), // alternative
}

// NewsTabLocators find the News tab link. The attribute match survives
// localization; the XPath text match is the fallback.
var NewsTabLocators = []string{
	`a[href*='tbm=nws']`,
	`//a[contains(text(), 'News')]`,
}

// InputFallbacks are tried when the configured search input locator is
// absent (markup rollout, logged-out variant)
var InputFallbacks = []string{
	`input[name='q']`,
	`textarea[name='q']`,
}
