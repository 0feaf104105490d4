package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Gate blocks automated progress until a human confirms a challenge page
// has been solved. The wait is unbounded by design: solving a challenge has
// no predictable duration.
type Gate struct {
	in  *bufio.Reader
	out io.Writer

	invocations int
}

// NewGate creates a gate reading acknowledgments from in (stdin in
// production) and printing instructions to out.
func NewGate(in io.Reader, out io.Writer) *Gate {
	return &Gate{in: bufio.NewReader(in), out: out}
}

// Wait prints the manual-solve instructions and blocks until a line arrives
// or ctx is cancelled. Returns ctx.Err() on cancellation so main can map an
// interrupt to a non-zero exit.
func (g *Gate) Wait(ctx context.Context) error {
	g.invocations++

	divider := strings.Repeat("=", 60)
	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, divider)
	fmt.Fprintln(g.out, "The search engine presented a challenge / anti-bot page.")
	fmt.Fprintln(g.out, "-> The browser window is open. Solve the challenge manually there.")
	fmt.Fprintln(g.out, "-> Then come back to this terminal and press Enter to continue.")
	fmt.Fprintln(g.out, divider)
	fmt.Fprintln(g.out)
	fmt.Fprint(g.out, "Press Enter after solving the challenge to continue... ")

	// On cancellation the reader goroutine stays blocked in ReadString
	// until the process exits; stdin has no cancellable read. The buffered
	// channel keeps its eventual send from blocking.
	lineCh := make(chan error, 1)
	go func() {
		_, err := g.in.ReadString('\n')
		lineCh <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-lineCh:
		if err != nil {
			return fmt.Errorf("manual-resolution wait aborted: %w", err)
		}
		return nil
	}
}
