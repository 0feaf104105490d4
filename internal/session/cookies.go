package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"serpmate/internal/config"
)

// Cookie is a slim export of one browser cookie. An owned type rather than
// the raw devtools one: the devtools enums reject empty strings on decode,
// so zero-valued fields would make a saved snapshot unreadable.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	Secure   bool    `json:"secure"`
	HTTPOnly bool    `json:"http_only"`
	Priority string  `json:"priority,omitempty"`
}

// Snapshot is a point-in-time export of the cookies held by the profile.
// Used to diagnose why challenge pages keep coming back (expired or missing
// consent/session cookies are the usual culprit).
type Snapshot struct {
	Cookies    []Cookie  `json:"cookies"`
	CapturedAt time.Time `json:"captured_at"`
}

// SnapshotPath returns the default path for the cookie snapshot file
func SnapshotPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cookies.json"), nil
}

// CaptureCookies extracts all cookies from a running browser context
func CaptureCookies(ctx context.Context) ([]Cookie, error) {
	var raw []*network.Cookie

	err := chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			raw, err = storage.GetCookies().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	cookies := make([]Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			Priority: string(c.Priority),
		})
	}
	return cookies, nil
}

// SaveSnapshot writes a cookie snapshot to the given path
func SaveSnapshot(path string, cookies []Cookie) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	snap := Snapshot{
		Cookies:    cookies,
		CapturedAt: time.Now(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// LoadSnapshot reads a previously saved cookie snapshot
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}
