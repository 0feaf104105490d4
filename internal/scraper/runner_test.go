package scraper

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serpmate/internal/config"
)

func testSearchConfig() config.SearchConfig {
	cfg := config.Default().Search
	cfg.SelectorWaitSeconds = 1
	cfg.SettleSeconds = 0
	return cfg
}

func newTestRunner(cfg config.SearchConfig, f *fakePage, gateInput string) *Runner {
	gate := NewGate(strings.NewReader(gateInput), io.Discard)
	return &Runner{cfg: cfg, page: f, gate: gate}
}

func TestRunCollectsOrganicResults(t *testing.T) {
	cfg := testSearchConfig()
	cfg.Query = "test query"
	cfg.NewsThreshold = 3 // 3 organic hits meet the threshold

	f := &fakePage{
		url:  "https://www.google.com",
		html: `<html><body><p>search home</p></body></html>`,
		visible: map[string]bool{
			"#APjFqb":        true,
			`div.yuRUbf > a`: true,
		},
		onSubmit: func(f *fakePage) {
			f.url = "https://www.google.com/search?q=test+query"
			f.html = organicHTML(3)
		},
	}

	r := newTestRunner(cfg, f, "")
	out, err := r.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Result 1", out[0].Title)
	assert.Equal(t, "https://example.com/1", out[0].Link)
	assert.Zero(t, r.gate.invocations, "no challenge, no manual prompt")
	assert.Empty(t, f.clicked, "no secondary-source attempt at threshold")
}

func TestRunGatesOnChallengePage(t *testing.T) {
	cfg := testSearchConfig()
	cfg.NewsThreshold = 3

	f := &fakePage{
		url:  "https://www.google.com/sorry/index?continue=x",
		html: `<html><body><div>I'm not a robot</div></body></html>`,
		visible: map[string]bool{
			"#APjFqb":        true,
			`div.yuRUbf > a`: true,
		},
		onSubmit: func(f *fakePage) {
			f.url = "https://www.google.com/search?q=x"
			f.html = organicHTML(3)
		},
	}

	r := newTestRunner(cfg, f, "\n")
	out, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, 1, r.gate.invocations)
}

func TestRunGatesOnInspectionFailure(t *testing.T) {
	cfg := testSearchConfig()
	cfg.NewsThreshold = 3

	f := &fakePage{
		url:          "https://www.google.com",
		html:         `<html><body>home</body></html>`,
		htmlFailures: 1, // first inspection blows up
		visible: map[string]bool{
			"#APjFqb":        true,
			`div.yuRUbf > a`: true,
		},
		onSubmit: func(f *fakePage) {
			f.html = organicHTML(3)
		},
	}

	r := newTestRunner(cfg, f, "\n")
	out, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, 1, r.gate.invocations, "inspection failure fails closed into the gate")
}

func TestRunInterruptedDuringGate(t *testing.T) {
	cfg := testSearchConfig()

	f := &fakePage{
		url:     "https://www.google.com/sorry/index",
		html:    `<html><body>verify</body></html>`,
		visible: map[string]bool{},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // operator interrupt before the gate opens

	gate := NewGate(neverReader{}, io.Discard)
	r := &Runner{cfg: cfg, page: f, gate: gate}

	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAugmentsFromNewsBelowThreshold(t *testing.T) {
	cfg := testSearchConfig()
	cfg.NewsThreshold = 6

	newsHTML := `<html><body>` +
		`<article><h3><a href="https://example.com/1">Dup of organic</a></h3></article>` +
		`<article><h3><a href="https://news.example/a">News A</a></h3></article>` +
		`<article><h3><a href="https://news.example/b">News B</a></h3></article>` +
		`</body></html>`

	f := &fakePage{
		url:  "https://www.google.com",
		html: `<html><body>home</body></html>`,
		visible: map[string]bool{
			"#APjFqb":        true,
			`div.yuRUbf > a`: true,
		},
		onSubmit: func(f *fakePage) {
			f.url = "https://www.google.com/search?q=x"
			f.html = organicHTML(2)
		},
		onClick: func(f *fakePage, q string) error {
			f.html = newsHTML
			f.visible[`article h3 a`] = true
			return nil
		},
	}

	r := newTestRunner(cfg, f, "")
	out, err := r.Run(context.Background())

	require.NoError(t, err)
	require.Contains(t, f.clicked, NewsTabLocators[0])

	// 2 organic + 2 new from News; the duplicate link is skipped.
	require.Len(t, out, 4)
	assert.Equal(t, "https://example.com/1", out[0].Link)
	assert.Equal(t, "News A", out[2].Title)
}

func TestRunSkipsAugmentationAtThreshold(t *testing.T) {
	cfg := testSearchConfig()
	cfg.NewsThreshold = 3

	f := &fakePage{
		url:  "https://www.google.com",
		html: `<html><body>home</body></html>`,
		visible: map[string]bool{
			"#APjFqb":        true,
			`div.yuRUbf > a`: true,
		},
		onSubmit: func(f *fakePage) {
			f.html = organicHTML(3)
		},
	}

	r := newTestRunner(cfg, f, "")
	_, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, f.clicked)
}

func TestSubmitQueryFallsBackToGenericInput(t *testing.T) {
	cfg := testSearchConfig()

	f := &fakePage{
		url:  "https://www.google.com",
		html: `<html><body>home</body></html>`,
		visible: map[string]bool{
			`input[name='q']`: true, // configured locator absent
		},
	}

	r := newTestRunner(cfg, f, "")
	require.NoError(t, r.submitQuery(context.Background()))

	require.Len(t, f.typed, 1)
	assert.True(t, strings.HasPrefix(f.typed[0], `input[name='q']=`))
}

func TestSubmitQueryFailsWhenNoInputFound(t *testing.T) {
	cfg := testSearchConfig()

	f := &fakePage{
		url:     "https://www.google.com",
		html:    `<html><body>home</body></html>`,
		visible: map[string]bool{},
	}

	r := newTestRunner(cfg, f, "")
	assert.Error(t, r.submitQuery(context.Background()))
}

// neverReader blocks forever, simulating an operator who never presses Enter
type neverReader struct{}

func (neverReader) Read([]byte) (int, error) {
	select {}
}
