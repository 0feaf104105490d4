package results

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Render writes a human-readable numbered listing of results
func Render(w io.Writer, rs []Result) {
	heading := color.New(color.FgGreen, color.Bold)
	link := color.New(color.FgCyan)

	heading.Fprintf(w, "Found %d unique results:\n\n", len(rs))
	for i, r := range rs {
		fmt.Fprintf(w, "%d. %s\n", i+1, r.Title)
		link.Fprintf(w, "   %s\n", r.Link)
		fmt.Fprintln(w)
	}
}

// RenderEmpty writes the zero-result diagnostic block. The causes listed
// are plausible, not diagnosed - the scraper cannot tell them apart.
func RenderEmpty(w io.Writer) {
	warn := color.New(color.FgYellow, color.Bold)

	warn.Fprintln(w, "No results collected. Possible causes:")
	fmt.Fprintln(w, "- You may still be on a challenge page (check the browser window).")
	fmt.Fprintln(w, "- The search engine changed its markup; selectors need an update.")
	fmt.Fprintln(w, "- Network or region-based blocking.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "If you see a challenge in the browser, solve it and re-run.")
}
