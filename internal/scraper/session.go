package scraper

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// page is the minimal surface of a live browser page the runner needs.
// Kept narrow so tests can substitute a scripted fake.
type page interface {
	Navigate(ctx context.Context, url string) error
	Location(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	Click(ctx context.Context, query string, timeout time.Duration) error
	TypeAndSubmit(ctx context.Context, selector, text string) error
}

// chromePage drives a real Chrome tab. The chromedp browser context is
// passed per call; the struct itself is stateless.
type chromePage struct{}

func (chromePage) Navigate(ctx context.Context, url string) error {
	return chromedp.Run(ctx, chromedp.Navigate(url))
}

func (chromePage) Location(ctx context.Context) (string, error) {
	var url string
	err := chromedp.Run(ctx, chromedp.Location(&url))
	return url, err
}

// HTML snapshots the rendered document
func (chromePage) HTML(ctx context.Context) (string, error) {
	var html string
	err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// WaitVisible waits up to timeout for the selector to be visible. A timeout
// is the normal "selector absent" signal, not a hard failure.
func (chromePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return chromedp.Run(tctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Click clicks the first node matching query. Uses chromedp's default
// search-based lookup, which accepts CSS selectors, XPath, and plain text.
func (chromePage) Click(ctx context.Context, query string, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return chromedp.Run(tctx, chromedp.Click(query))
}

// TypeAndSubmit clicks the input, types the text, and submits with Enter
func (chromePage) TypeAndSubmit(ctx context.Context, selector, text string) error {
	tctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return chromedp.Run(tctx,
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, text+kb.Enter, chromedp.ByQuery),
	)
}
