package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// fakePage is a scripted stand-in for a live browser tab
type fakePage struct {
	url     string
	html    string
	visible map[string]bool

	htmlFailures int // first N HTML calls fail with a transient error
	htmlCalls    int

	navigated []string
	clicked   []string
	typed     []string

	onSubmit func(f *fakePage)                 // runs after TypeAndSubmit
	onClick  func(f *fakePage, q string) error // nil means every click fails
}

func (f *fakePage) Navigate(_ context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	return nil
}

func (f *fakePage) Location(context.Context) (string, error) {
	return f.url, nil
}

func (f *fakePage) HTML(context.Context) (string, error) {
	f.htmlCalls++
	if f.htmlFailures > 0 {
		f.htmlFailures--
		return "", errors.New("execution context was destroyed")
	}
	return f.html, nil
}

func (f *fakePage) WaitVisible(_ context.Context, selector string, _ time.Duration) error {
	if f.visible[selector] {
		return nil
	}
	return errors.New("waiting for selector timed out")
}

func (f *fakePage) Click(_ context.Context, q string, _ time.Duration) error {
	f.clicked = append(f.clicked, q)
	if f.onClick == nil {
		return errors.New("no node matched")
	}
	return f.onClick(f, q)
}

func (f *fakePage) TypeAndSubmit(_ context.Context, selector, text string) error {
	f.typed = append(f.typed, selector+"="+text)
	if f.onSubmit != nil {
		f.onSubmit(f)
	}
	return nil
}

// organicHTML renders n organic result blocks in Google's typical markup
func organicHTML(n int) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb,
			`<div class="yuRUbf"><a href="https://example.com/%d"><h3>Result %d</h3></a></div>`,
			i, i)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}
