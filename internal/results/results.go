// Package results holds the scraped search result type and the pure
// operations on it.
package results

// Result represents one scraped search hit
type Result struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Dedupe returns a new slice with exactly one entry per distinct non-empty
// link, preserving the order of first occurrence. Entries with an empty
// link are dropped.
func Dedupe(in []Result) []Result {
	seen := make(map[string]struct{}, len(in))
	out := make([]Result, 0, len(in))

	for _, r := range in {
		if r.Link == "" {
			continue
		}
		if _, dup := seen[r.Link]; dup {
			continue
		}
		seen[r.Link] = struct{}{}
		out = append(out, r)
	}

	return out
}

// MergeNew appends entries from extra whose links are not already present
// in base.
func MergeNew(base, extra []Result) []Result {
	existing := make(map[string]struct{}, len(base))
	for _, r := range base {
		existing[r.Link] = struct{}{}
	}

	for _, r := range extra {
		if _, dup := existing[r.Link]; dup {
			continue
		}
		existing[r.Link] = struct{}{}
		base = append(base, r)
	}

	return base
}
