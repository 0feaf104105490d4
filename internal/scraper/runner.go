// Package scraper drives a search-engine session: submit a query, pause for
// manual challenge solving when needed, and harvest result links through
// fallback selector chains.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"serpmate/internal/challenge"
	"serpmate/internal/config"
	"serpmate/internal/results"
)

// inputWait bounds the wait for the search input; shorter than the result
// wait because the input is on the landing page or not at all.
const inputWait = 6 * time.Second

// newsTabWait bounds the best-effort News tab lookup
const newsTabWait = 5 * time.Second

// Runner orchestrates one scraping run against a live page
type Runner struct {
	cfg  config.SearchConfig
	page page
	gate *Gate
}

// New creates a runner that drives a real browser tab. ctx passed to Run
// must be a chromedp browser context.
func New(cfg config.SearchConfig, gate *Gate) *Runner {
	return &Runner{cfg: cfg, page: chromePage{}, gate: gate}
}

// Run performs the full search-and-scrape flow and returns deduplicated
// results. A returned error of context.Canceled means the operator
// interrupted the manual-resolution wait.
func (r *Runner) Run(ctx context.Context) ([]results.Result, error) {
	log.Printf("Opening %s ...", r.cfg.URL)
	if err := r.page.Navigate(ctx, r.cfg.URL); err != nil {
		// A challenge check and selector waits follow; those give a
		// slow page a second chance.
		log.Printf("Initial navigation error (continuing): %v", err)
	}

	if err := r.gateIfChallenged(ctx); err != nil {
		return nil, err
	}

	if err := r.submitQuery(ctx); err != nil {
		return nil, fmt.Errorf("submit query: %w", err)
	}
	r.settle(ctx)

	// The search itself can land on a challenge page.
	if err := r.gateIfChallenged(ctx); err != nil {
		return nil, err
	}

	log.Println("Collecting search results...")
	collected := r.collect(ctx, OrganicChain, r.cfg.MaxResults)

	if len(collected) < r.cfg.NewsThreshold {
		log.Printf("Only %d organic results; trying the News tab...", len(collected))
		if r.openNewsTab(ctx) {
			fromNews := r.collect(ctx, NewsChain, r.cfg.MaxResults)
			collected = results.MergeNew(collected, fromNews)
		}
	}

	return results.Dedupe(collected), nil
}

// gateIfChallenged inspects the current page and blocks on the manual gate
// when it looks like a challenge interstitial. An inspection failure is
// treated as a possible challenge so a human gets to look.
func (r *Runner) gateIfChallenged(ctx context.Context) error {
	loc, err := r.page.Location(ctx)
	if err != nil {
		log.Printf("Could not read page location: %v", err)
		loc = ""
	}

	var challenged bool
	html, err := r.page.HTML(ctx)
	if err != nil {
		log.Printf("Could not inspect page (%v); treating as possible challenge", err)
		challenged = true
	} else {
		challenged, err = challenge.FromHTML(loc, strings.NewReader(html))
		if err != nil {
			log.Printf("Challenge inspection failed (%v); treating as possible challenge", err)
			challenged = true
		}
	}

	if !challenged {
		return nil
	}

	if err := r.gate.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return context.Canceled
		}
		return err
	}
	r.settle(ctx)
	return nil
}

// submitQuery types the query into the first usable search input and
// submits it with Enter. The configured locator is tried first, then the
// generic fallbacks.
func (r *Runner) submitQuery(ctx context.Context) error {
	locators := append([]string{r.cfg.InputSelector}, InputFallbacks...)

	for _, sel := range locators {
		if err := r.page.WaitVisible(ctx, sel, inputWait); err != nil {
			log.Printf("Search input %q not found; trying fallback", sel)
			continue
		}
		if err := r.page.TypeAndSubmit(ctx, sel, r.cfg.Query); err != nil {
			log.Printf("Typing into %q failed (%v); trying fallback", sel, err)
			continue
		}
		log.Printf("Submitted query via %q", sel)
		return nil
	}

	return errors.New("no usable search input found")
}

// openNewsTab clicks through to the News listing, best-effort
func (r *Runner) openNewsTab(ctx context.Context) bool {
	for _, q := range NewsTabLocators {
		if err := r.page.Click(ctx, q, newsTabWait); err != nil {
			continue
		}
		r.settle(ctx)
		return true
	}
	log.Println("News tab not available")
	return false
}

// settle gives dynamic content a moment to render after a navigation
func (r *Runner) settle(ctx context.Context) {
	select {
	case <-time.After(r.cfg.SettleWait()):
	case <-ctx.Done():
	}
}
