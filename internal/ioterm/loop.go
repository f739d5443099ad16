package ioterm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gn"
)

const prompt = "> "

const help = `Commands:
  click LEVEL:NAME   expand or collapse a node (alias: c, toggle)
  hover LEVEL:NAME   show details of a node (alias: h)
  show               redraw the view (alias: s)
  help               show this message
  quit               leave (alias: q, exit)

LEVEL is kingdom, phylum, class, order, family, genus or species.`

var errQuit = errors.New("quit")

// Loop reads commands line by line and applies them to a session. Every
// command runs to completion before the next line is read.
type Loop struct {
	session  *gbiftree.Session
	renderer gbiftree.Renderer
	in       io.Reader
	out      io.Writer
}

// NewLoop creates an interactive loop over a session.
func NewLoop(
	s *gbiftree.Session,
	r gbiftree.Renderer,
	in io.Reader,
	out io.Writer,
) *Loop {
	return &Loop{session: s, renderer: r, in: in, out: out}
}

// Run draws the initial view and handles commands until the input ends,
// a quit command arrives or the context is canceled. Input is read in a
// separate goroutine, so cancellation is noticed while waiting for a
// line. That goroutine stays blocked on the reader until the reader
// returns.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.renderer.Render(l.out, l.session.View()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	done := make(chan error, 1)
	go l.read(ctx, lines, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(l.out, prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(l.out)
			return ctx.Err()
		case err := <-done:
			fmt.Fprintln(l.out)
			return err
		case line = <-lines:
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		err := l.handle(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(l.out, "Error: %s\n", userMessage(err))
		}
	}
}

// read sends input lines until the input ends or the context is done.
// Lines are unbuffered, so the end of input is reported only after the
// last line was taken.
func (l *Loop) read(ctx context.Context, lines chan<- string, done chan<- error) {
	sc := bufio.NewScanner(l.in)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
	done <- sc.Err()
}

func (l *Loop) handle(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(
		strings.TrimSpace(line), fields[0],
	))

	switch cmd {
	case "click", "c", "toggle":
		level, name, err := ParseNode(arg)
		if err != nil {
			return err
		}
		if err = l.session.Click(level, name); err != nil {
			return err
		}
		slog.Info("Click", "level", level.String(), "name", name)
		return l.renderer.Render(l.out, l.session.View())
	case "hover", "h":
		level, name, err := ParseNode(arg)
		if err != nil {
			return err
		}
		tip, ok := l.session.Hover(level, name)
		if !ok {
			return gbiftree.NodeNotVisibleError(level, name)
		}
		fmt.Fprintln(l.out, tip)
	case "show", "s":
		return l.renderer.Render(l.out, l.session.View())
	case "help", "?":
		fmt.Fprintln(l.out, help)
	case "quit", "q", "exit":
		return errQuit
	default:
		fmt.Fprintf(l.out, "Unknown command %q, type 'help'\n", cmd)
	}
	return nil
}

// ParseNode splits "level:name" into a level and a name. Names may
// contain spaces and colons.
func ParseNode(s string) (taxon.Level, string, error) {
	lvl, name, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return taxon.Unknown, "", fmt.Errorf("expected LEVEL:NAME, got %q", s)
	}
	level, err := taxon.NewLevel(lvl)
	if err != nil {
		return taxon.Unknown, "", err
	}
	return level, name, nil
}

// userMessage renders the message of gn errors without markup.
func userMessage(err error) string {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) || gnErr.Msg == "" {
		return err.Error()
	}
	msg := fmt.Sprintf(gnErr.Msg, gnErr.Vars...)
	return strings.NewReplacer("<em>", "", "</em>", "").Replace(msg)
}
