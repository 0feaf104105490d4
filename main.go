// Command serpmate runs a search against Google in a real browser with a
// persisted profile, pausing for manual challenge solving when needed, and
// prints the scraped result links.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/chromedp/chromedp"

	"serpmate/internal/browser"
	"serpmate/internal/config"
	"serpmate/internal/results"
	"serpmate/internal/scraper"
	"serpmate/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	os.Exit(run())
}

func run() int {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	profileDir, err := session.Resolve(cfg.Browser.ProfileDir)
	if err != nil {
		log.Printf("Failed to resolve profile directory: %v", err)
		return 1
	}
	if err := session.Ensure(profileDir); err != nil {
		log.Printf("Failed to create profile directory: %v", err)
		return 1
	}
	if session.IsWarm(profileDir) {
		log.Printf("Reusing browser profile at %s", profileDir)
	} else {
		log.Printf("Creating new browser profile at %s", profileDir)
	}

	// One browser for the whole run; the deferred cancels release it on
	// every exit path.
	opts := browser.Options(cfg.Browser.Headless, profileDir)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	gate := scraper.NewGate(os.Stdin, os.Stderr)
	runner := scraper.New(cfg.Search, gate)

	found, err := runner.Run(browserCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Println("Interrupted by user. Exiting.")
			return 1
		}
		log.Printf("Scrape failed: %v", err)
		return 1
	}

	if len(found) == 0 {
		results.RenderEmpty(os.Stdout)
		return 2
	}

	results.Render(os.Stdout, found)
	log.Println("Closing browser (profile kept). The next run reuses the same profile to reduce challenges.")
	return 0
}

// loadConfig loads the config file, creating it with defaults on first run
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err == nil {
		return cfg
	}

	cfg = config.Default()
	if os.IsNotExist(err) {
		if saveErr := cfg.Save(); saveErr != nil {
			log.Printf("Warning: could not save default config: %v", saveErr)
		} else if path, pathErr := config.ConfigPath(); pathErr == nil {
			log.Printf("Created default config at: %s", path)
		}
	} else {
		log.Printf("Warning: could not load config: %v (using defaults)", err)
	}
	return cfg
}
