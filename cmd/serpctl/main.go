// Command serpctl is a dev CLI for serpmate maintenance and debugging tasks.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/chromedp/chromedp"
	"github.com/pkg/browser"

	browseropts "serpmate/internal/browser"
	"serpmate/internal/config"
	"serpmate/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "bot-test":
		runBotTest()
	case "open":
		if len(os.Args) < 3 {
			fmt.Println("Usage: serpctl open <config|profile>")
			os.Exit(1)
		}
		runOpen(os.Args[2])
	case "reset-profile":
		runResetProfile()
	case "cookies":
		runCookies()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: serpctl <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  bot-test       Open bot.sannysoft.com to audit the browser fingerprint")
	fmt.Println("  open config    Open the config file in the default editor")
	fmt.Println("  open profile   Open the browser profile directory in the file explorer")
	fmt.Println("  reset-profile  Delete the persisted browser profile")
	fmt.Println("  cookies        Snapshot the profile's cookies for diagnostics")
}

// profileDir resolves and creates the profile directory from config
func profileDir() string {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	dir, err := session.Resolve(cfg.Browser.ProfileDir)
	if err != nil {
		log.Fatalf("Failed to resolve profile directory: %v", err)
	}
	if err := session.Ensure(dir); err != nil {
		log.Fatalf("Failed to create profile directory: %v", err)
	}
	return dir
}

func runBotTest() {
	log.Println("Opening bot.sannysoft.com with stealth browser options and the persisted profile...")

	opts := browseropts.Options(false, profileDir()) // non-headless so you can see it

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate("https://bot.sannysoft.com"),
		chromedp.WaitVisible("body", chromedp.ByQuery),
	)
	if err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	fmt.Println("Press Enter to close the browser...")
	fmt.Scanln()

	log.Println("Done.")
}

func runOpen(target string) {
	var path string
	var err error

	switch target {
	case "config":
		path, err = config.ConfigPath()
	case "profile":
		path = profileDir()
	default:
		fmt.Printf("Unknown target: %s\n", target)
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Failed to get path: %v", err)
	}

	if err := browser.OpenFile(path); err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
}

func runResetProfile() {
	dir := profileDir()
	if err := session.Reset(dir); err != nil {
		log.Fatalf("Failed to reset profile: %v", err)
	}
	log.Printf("Profile at %s deleted. The next run starts cold.", dir)
}

func runCookies() {
	opts := browseropts.Options(true, profileDir())

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	cookies, err := session.CaptureCookies(ctx)
	if err != nil {
		log.Fatalf("Failed to capture cookies: %v", err)
	}

	path, err := session.SnapshotPath()
	if err != nil {
		log.Fatalf("Failed to get snapshot path: %v", err)
	}
	if err := session.SaveSnapshot(path, cookies); err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}

	log.Printf("Saved %d cookies to %s", len(cookies), path)
}
