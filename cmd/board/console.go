package main

import (
	"aptos-board/domain"
	"aptos-board/errors"
	"aptos-board/moderation"
	"aptos-board/runtime"
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const helpText = `commands:
  connect              connect or disconnect the wallet
  post <text>          post a message
  show                 render the current view
  view <home|stats|moderation>
  more                 load more messages
  copy <n>             copy the sender of the n-th visible message
  profile              list your own messages
  skip                 dismiss the onboarding panel
  dismiss              dismiss the notification
  queue [all|flagged|pending]
  select <n>           toggle the n-th queue entry
  hide | delete | approve
  quit`

// Console turns text commands into board intents.
type Console struct {
	board    *runtime.Board
	renderer *Renderer
	filter   moderation.Filter
}

func NewConsole(board *runtime.Board, renderer *Renderer) *Console {
	return &Console{board: board, renderer: renderer, filter: moderation.FilterAll}
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
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
	}()

	c.renderer.Println(helpText)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := c.Execute(line)
			if err != nil {
				c.renderer.Error(err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs one command and reports whether the session should end.
func (c *Console) Execute(line string) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	s := c.board.Store()

	switch strings.ToLower(name) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		c.renderer.Println(helpText)
	case "connect", "disconnect":
		return false, s.ConnectWallet()
	case "post":
		_, err := s.PostMessage(arg)
		return false, err
	case "show":
		c.renderer.Snapshot(s.Snapshot())
	case "view":
		view, ok := domain.ParseView(arg)
		if !ok {
			return false, fmt.Errorf("%w: %q", errors.ErrUnknownView, arg)
		}
		if err := s.ChangeView(view); err != nil {
			return false, err
		}
		c.renderer.Snapshot(s.Snapshot())
	case "more":
		if err := s.LoadMore(); err != nil {
			return false, err
		}
		c.renderer.Snapshot(s.Snapshot())
	case "copy":
		m, err := c.visibleMessage(arg)
		if err != nil {
			return false, err
		}
		return false, s.CopySender(m.ID)
	case "profile":
		c.renderer.Profile(s.Snapshot())
	case "skip":
		return false, s.DismissOnboarding()
	case "dismiss":
		return false, s.DismissNotification()
	case "queue":
		if !s.IsAdmin() {
			return false, errors.ErrModerationForbidden
		}
		if arg != "" {
			c.filter = moderation.ParseFilter(arg)
		}
		c.renderQueue()
	case "select":
		if !s.IsAdmin() {
			return false, errors.ErrModerationForbidden
		}
		entries := c.board.Queue().Entries(c.filter)
		n, err := position(arg, len(entries))
		if err != nil {
			return false, err
		}
		if _, err := c.board.Queue().Toggle(entries[n].Message.ID); err != nil {
			return false, err
		}
		c.renderQueue()
	case "hide", "delete", "approve":
		if !s.IsAdmin() {
			return false, errors.ErrModerationForbidden
		}
		ids, err := c.board.Queue().Apply(moderation.Action(name))
		if err != nil {
			return false, err
		}
		c.renderer.Println(fmt.Sprintf("%s: %d messages", name, len(ids)))
		c.renderQueue()
	default:
		return false, fmt.Errorf("unknown command %q, type help", name)
	}
	return false, nil
}

func (c *Console) visibleMessage(arg string) (domain.Message, error) {
	visible, _ := c.board.Store().Snapshot().Window()
	n, err := position(arg, len(visible))
	if err != nil {
		return domain.Message{}, err
	}
	return visible[n], nil
}

func (c *Console) renderQueue() {
	q := c.board.Queue()
	c.renderer.Queue(q.Entries(c.filter), q.Counts(), q.Selected())
}

// position converts a 1-based index typed by the user.
func position(arg string, size int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > size {
		return 0, fmt.Errorf("%w: %q", errors.ErrMessageNotFound, arg)
	}
	return n - 1, nil
}
