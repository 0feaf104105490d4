// Command mailbot sends the configured email, either by driving the
// webmail compose flow in a real browser or over SMTP.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"serpmate/internal/config"
	"serpmate/internal/notifier"
	"serpmate/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: could not load config: %v (using defaults)", err)
		cfg = config.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The webmail provider shares the search profile, so the logged-in
	// webmail session persists between runs.
	profileDir, err := session.Resolve(cfg.Browser.ProfileDir)
	if err != nil {
		log.Printf("Failed to resolve profile directory: %v", err)
		return 1
	}
	if err := session.Ensure(profileDir); err != nil {
		log.Printf("Failed to create profile directory: %v", err)
		return 1
	}

	sender, err := notifier.NewFromConfig(cfg.Mail, profileDir)
	if err != nil {
		log.Printf("Bad mail configuration: %v", err)
		return 1
	}

	log.Printf("Sending mail to %s via %s...", cfg.Mail.To, cfg.Mail.Provider)
	if err := sender.Send(ctx, cfg.Mail.To, cfg.Mail.Subject, cfg.Mail.Body); err != nil {
		log.Printf("Send failed: %v", err)
		return 1
	}

	log.Printf("Email sent to %s", cfg.Mail.To)
	return 0
}
