package challenge

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDetectURLMarker(t *testing.T) {
	doc := docFrom(t, `<html><body><p>please verify</p></body></html>`)
	assert.True(t, Detect("https://www.google.com/sorry/index?continue=x", doc))
}

func TestDetectPhrase(t *testing.T) {
	doc := docFrom(t, `<html><body><div>I'm not a robot</div></body></html>`)
	assert.True(t, Detect("https://www.google.com/search?q=x", doc))

	doc = docFrom(t, `<html><body><p>Our systems have detected unusual traffic from your computer network.</p></body></html>`)
	assert.True(t, Detect("https://www.google.com/search?q=x", doc))
}

func TestDetectUnrelatedPage(t *testing.T) {
	doc := docFrom(t, `<html><body><h3><a href="https://example.com">Example result</a></h3></body></html>`)
	assert.False(t, Detect("https://www.google.com/search?q=x", doc))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("execution context destroyed")
}

func TestFromHTMLInspectionError(t *testing.T) {
	challenged, err := FromHTML("https://www.google.com/search?q=x", failingReader{})
	assert.Error(t, err, "inspection failure must surface, not fail open")
	assert.False(t, challenged)
}

func TestFromHTMLURLMarkerBeatsBrokenReader(t *testing.T) {
	challenged, err := FromHTML("https://www.google.com/sorry/index", failingReader{})
	assert.NoError(t, err)
	assert.True(t, challenged)
}

func TestFromHTMLCleanPage(t *testing.T) {
	challenged, err := FromHTML("https://www.google.com/search?q=x",
		strings.NewReader(`<html><body><h3>ok</h3></body></html>`))
	assert.NoError(t, err)
	assert.False(t, challenged)
}
