package providers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"serpmate/internal/browser"
)

// Webmail compose selectors (Gmail's DOM). Localized labels break the
// aria-label matches, which is why every field gets a fallback chain.
// Update these when the compose flow breaks.
var (
	composeChain = []string{
		`div[gh="cm"]`,
		`div[role="button"][aria-label*="Compose"]`,
	}
	toChain = []string{
		`input[peoplekit-id="BbVjBd"]`,
		`textarea[name="to"]`,
		`input[aria-label*="To"]`,
	}
	subjectChain = []string{
		`input[name="subjectbox"]`,
	}
	bodyChain = []string{
		`div[aria-label="Message Body"]`,
		`div[role="textbox"][g_editable="true"]`,
	}
	sendChain = []string{
		`div[aria-label*="Send"][role="button"]`,
		`div[data-tooltip*="Send"]`,
	}
)

// sentToastSelector shows the "Message sent" confirmation
const sentToastSelector = `span.bAq`

const (
	composeWait = 20 * time.Second
	fieldWait   = 10 * time.Second
	confirmWait = 10 * time.Second
	sendTimeout = 3 * time.Minute
)

// WebmailSender sends mail by driving the webmail compose flow in a real
// browser. Element addressing is semantic (selectors), never screen
// coordinates, and every step is verified before the next one runs.
type WebmailSender struct {
	url        string
	profileDir string
}

// NewWebmailSender creates a webmail sender. profileDir is the persisted
// browser profile holding the logged-in webmail session.
func NewWebmailSender(url, profileDir string) *WebmailSender {
	return &WebmailSender{url: url, profileDir: profileDir}
}

// Send composes and sends one message, returning an error unless the
// webmail UI confirmed the send.
func (s *WebmailSender) Send(ctx context.Context, to, subject, body string) error {
	// Headful: the session lives in the persisted profile and a login
	// prompt needs a human.
	opts := browser.Options(false, s.profileDir)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, sendTimeout)
	defer timeoutCancel()

	log.Printf("Opening %s ...", s.url)
	if err := chromedp.Run(browserCtx, chromedp.Navigate(s.url)); err != nil {
		return fmt.Errorf("open webmail: %w", err)
	}

	if err := clickFirst(browserCtx, composeChain, composeWait); err != nil {
		return fmt.Errorf("compose button not found (are you logged in?): %w", err)
	}

	// Enter confirms the recipient chip before focus moves on.
	if err := fillFirst(browserCtx, toChain, to+kb.Enter, fieldWait); err != nil {
		return fmt.Errorf("recipient field: %w", err)
	}
	if err := fillFirst(browserCtx, subjectChain, subject, fieldWait); err != nil {
		return fmt.Errorf("subject field: %w", err)
	}
	if err := fillFirst(browserCtx, bodyChain, body, fieldWait); err != nil {
		return fmt.Errorf("message body field: %w", err)
	}

	if err := s.dispatch(browserCtx); err != nil {
		return err
	}

	log.Printf("Message to %s confirmed sent", to)
	return nil
}

// dispatch triggers the send and waits for the confirmation toast.
// Keyboard send first (works from any compose field), Send button as
// fallback.
func (s *WebmailSender) dispatch(ctx context.Context) error {
	err := chromedp.Run(ctx,
		chromedp.KeyEvent(kb.Enter, chromedp.KeyModifiers(input.ModifierCtrl)),
	)
	if err == nil && waitVisible(ctx, sentToastSelector, confirmWait) == nil {
		return nil
	}

	if err := clickFirst(ctx, sendChain, fieldWait); err != nil {
		return fmt.Errorf("send control not found: %w", err)
	}
	if err := waitVisible(ctx, sentToastSelector, confirmWait); err != nil {
		return errors.New("could not confirm the message was sent")
	}
	return nil
}

// clickFirst clicks the first locator in the chain that becomes visible
func clickFirst(ctx context.Context, chain []string, timeout time.Duration) error {
	for _, sel := range chain {
		err := runWithTimeout(ctx, timeout,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.Click(sel, chromedp.ByQuery),
		)
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("none of %d locators matched", len(chain))
}

// fillFirst types text into the first locator in the chain that becomes
// visible
func fillFirst(ctx context.Context, chain []string, text string, timeout time.Duration) error {
	for _, sel := range chain {
		err := runWithTimeout(ctx, timeout,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.Click(sel, chromedp.ByQuery),
			chromedp.SendKeys(sel, text, chromedp.ByQuery),
		)
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("none of %d locators matched", len(chain))
}

func waitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	return runWithTimeout(ctx, timeout, chromedp.WaitVisible(sel, chromedp.ByQuery))
}

func runWithTimeout(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return chromedp.Run(tctx, actions...)
}
