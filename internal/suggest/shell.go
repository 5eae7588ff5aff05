package suggest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// RenderFunc draws a view
type RenderFunc func(io.Writer, View) error

// Shell is a line oriented editor for a draft. Submissions run in the
// background so rows stay editable while a request is loading.
type Shell struct {
	client *Client
	draft  *Draft
	in     io.Reader
	render RenderFunc

	outMu sync.Mutex
	out   io.Writer

	inflight sync.WaitGroup
}

// NewShell creates a shell editing a fresh draft
func NewShell(client *Client, in io.Reader, out io.Writer, render RenderFunc) *Shell {
	if render == nil {
		render = RenderText
	}
	return &Shell{
		client: client,
		draft:  NewDraft(),
		in:     in,
		out:    out,
		render: render,
	}
}

// Draft exposes the draft being edited
func (s *Shell) Draft() *Draft {
	return s.draft
}

const shellHelp = `Commands:
  list            show the ingredient rows
  add [text]      append a row
  set N text      replace row N
  rm N            remove row N (the last row stays)
  submit          ask the service for recipes
  wait            block until the pending request finishes
  show            print the latest results
  reset           clear rows and results
  help            this text
  quit            leave`

// Run reads commands until quit, EOF or ctx is done. Pending requests are
// waited for before it returns.
func (s *Shell) Run(ctx context.Context) error {
	defer s.inflight.Wait()

	s.printf("%s\n", shellHelp)
	s.printRows()

	scanner := bufio.NewScanner(s.in)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.printf("> ")
		if !scanner.Scan() {
			s.printf("\n")
			return scanner.Err()
		}
		if quit := s.exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

func (s *Shell) exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
	case "list", "ls":
		s.printRows()
	case "add":
		s.draft.AddRow()
		if rest != "" {
			s.draft.UpdateRow(s.draft.Len()-1, rest)
		}
		s.printRows()
	case "set":
		n, text, _ := strings.Cut(rest, " ")
		i, ok := s.rowIndex(n)
		if !ok {
			return false
		}
		s.draft.UpdateRow(i, text)
		s.printRows()
	case "rm", "remove":
		i, ok := s.rowIndex(rest)
		if !ok {
			return false
		}
		if !s.draft.RemoveRow(i) {
			s.printf("cannot remove the only row\n")
			return false
		}
		s.printRows()
	case "submit", "go":
		s.submit(ctx)
	case "wait":
		s.inflight.Wait()
	case "show":
		s.show()
	case "reset":
		s.draft.Reset()
		s.client.Reset()
		s.printRows()
	case "help", "?":
		s.printf("%s\n", shellHelp)
	case "quit", "exit", "q":
		return true
	default:
		s.printf("unknown command %q, try help\n", cmd)
	}
	return false
}

func (s *Shell) submit(ctx context.Context) {
	if s.client.Snapshot().Loading() {
		s.printf("a request is already loading; ignored\n")
		return
	}

	// built here so the background request never reads the draft
	req := s.draft.Request()
	s.printf("Getting suggestions for %d ingredient(s)...\n", len(req.Ingredients))

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		_, err := s.client.SubmitRequest(ctx, req)
		switch {
		case errors.Is(err, ErrRequestInFlight):
			s.printf("a request is already loading; ignored\n")
		case errors.Is(err, ErrDiscarded):
		default:
			s.show()
		}
	}()
}

func (s *Shell) show() {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if err := s.render(s.out, ViewOf(s.client.Snapshot())); err != nil {
		fmt.Fprintf(s.out, "could not render results: %v\n", err)
	}
}

func (s *Shell) rowIndex(arg string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > s.draft.Len() {
		s.printf("row must be a number between 1 and %d\n", s.draft.Len())
		return 0, false
	}
	return n - 1, true
}

func (s *Shell) printRows() {
	var b strings.Builder
	b.WriteString("Available Ingredients\n")
	for i, row := range s.draft.Rows() {
		if row == "" {
			row = "(empty)"
		}
		fmt.Fprintf(&b, "  %d. %s\n", i+1, plain(row))
	}
	s.printf("%s", b.String())
}

func (s *Shell) printf(format string, args ...interface{}) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}
