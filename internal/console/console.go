// Package console drives a browse session from a line-oriented terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/query"
	"github.com/comicverse/hub/internal/service"
)

const help = `commands:
  search <text>       filter by title
  publisher <name>    filter by publisher (empty clears)
  genre <name>        filter by genre (empty clears)
  character <name>    filter by character (empty clears)
  sort <key>          one of %s
  flush               apply typed filters now
  reset               clear filters and sort
  show                print the current results
  quit
`

// Console reads commands and prints every result the session publishes.
type Console struct {
	session *service.BrowseSession

	mu       sync.Mutex
	out      io.Writer
	criteria query.Criteria
}

// New creates a console over session writing to out.
func New(session *service.BrowseSession, out io.Writer) *Console {
	return &Console{session: session, out: out}
}

// Run processes commands from in until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := c.session.Subscribe(c.print)
	defer unsubscribe()

	c.print(c.session.Result())

	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				c.session.Flush()
				select {
				case err := <-errCh:
					return err
				default:
					return nil
				}
			}
			if quit := c.exec(line); quit {
				return nil
			}
		}
	}
}

// exec runs one command and reports whether the console should stop.
func (c *Console) exec(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "search":
		c.update(func(cr *query.Criteria) { cr.Search = arg })
	case "publisher":
		c.update(func(cr *query.Criteria) { cr.Publisher = arg })
	case "genre":
		c.update(func(cr *query.Criteria) { cr.Genre = arg })
	case "character":
		c.update(func(cr *query.Criteria) { cr.Character = arg })
	case "sort":
		key := query.SortKey(arg)
		if !key.Valid() {
			c.printf("unknown sort %q\n", arg)
			return false
		}
		c.session.SetSort(key)
	case "flush":
		c.session.Flush()
	case "reset":
		c.mu.Lock()
		c.criteria = query.Criteria{}
		c.mu.Unlock()
		c.session.Reset()
	case "show":
		c.print(c.session.Result())
	case "help":
		c.printf(help, sortKeyList())
	default:
		c.printf("unknown command %q, try help\n", cmd)
	}
	return false
}

func (c *Console) update(fn func(*query.Criteria)) {
	c.mu.Lock()
	fn(&c.criteria)
	criteria := c.criteria
	c.mu.Unlock()

	c.session.SetCriteria(criteria)
}

func (c *Console) print(res service.BrowseResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "%s (sort: %s)\n", res.Message, res.Sort)
	for _, comic := range res.Comics {
		fmt.Fprintf(c.out, "  %-6s %-40s %-10s %10s  %s\n",
			comic.ID, comic.Title, comic.Publisher, domain.FormatPrice(comic.Price), comic.ReleaseDate)
	}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func sortKeyList() string {
	keys := query.SortKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return strings.Join(out, ", ")
}
