package scraper

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"serpmate/internal/results"
)

// retryBackoff is the pause between snapshot attempts; lets a late
// navigation finish before the next try.
const retryBackoff = 800 * time.Millisecond

// Extract enumerates elements matched by sel in doc, up to limit entries.
// The title comes from a nested heading when present, otherwise from the
// element's own text; the link from the href attribute. Entries missing
// either field are skipped. No uniqueness guarantee at this layer.
func Extract(doc *goquery.Document, sel Selector, limit int) []results.Result {
	var out []results.Result

	doc.FindMatcher(sel.matcher).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(out) >= limit {
			return false
		}

		title := strings.TrimSpace(s.Find("h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(s.Text())
		}
		href, _ := s.Attr("href")

		if title == "" || href == "" {
			return true
		}

		out = append(out, results.Result{Title: title, Link: href})
		return true
	})

	return out
}

// collect walks the selector chain in priority order, harvesting up to max
// results. Per selector: wait briefly for presence (absent means advance to
// the next fallback), snapshot the rendered document with a bounded retry,
// and extract up to the remaining capacity. The retry bound is per
// selector; the chain as a whole is never retried.
func (r *Runner) collect(ctx context.Context, chain []Selector, max int) []results.Result {
	var out []results.Result

	for _, sel := range chain {
		remaining := max - len(out)
		if remaining <= 0 {
			break
		}

		if err := r.page.WaitVisible(ctx, sel.Raw, r.cfg.SelectorWait()); err != nil {
			continue
		}

		html, err := r.snapshot(ctx)
		if err != nil {
			log.Printf("Giving up on selector %q: %v", sel.Raw, err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			log.Printf("Unparseable page for selector %q: %v", sel.Raw, err)
			continue
		}

		out = append(out, Extract(doc, sel, remaining)...)
	}

	return out
}

// snapshot fetches the rendered document, retrying transient failures
// (detached execution context during a late navigation, typically) up to
// the configured retry bound.
func (r *Runner) snapshot(ctx context.Context) (string, error) {
	attempts := r.cfg.MaxRetries
	if attempts < 1 {
		// A misconfigured bound must not skip the fetch entirely.
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		html, err := r.page.HTML(ctx)
		if err == nil {
			return html, nil
		}
		lastErr = err
	}

	return "", lastErr
}
