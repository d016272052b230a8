package main

import (
	"aptos-board/domain"
	"aptos-board/domain/event"
	"aptos-board/moderation"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type RenderOptions struct {
	// BOARD_COLOURS enables colorized output
	Colours bool `envconfig:"BOARD_COLOURS" default:"true"`
	// BOARD_LIVE_FEED prints messages as they arrive
	LiveFeed bool `envconfig:"BOARD_LIVE_FEED" default:"true"`
	// BOARD_WRAP_TEXT lets long messages wrap inside the feed table
	WrapText bool `envconfig:"BOARD_WRAP_TEXT" default:"false"`
}

func LoadRenderOptions() (RenderOptions, error) {
	var opts RenderOptions
	err := envconfig.Process("", &opts)
	return opts, err
}

// Renderer prints board state to a terminal. It only displays what it is handed.
type Renderer struct {
	mu   sync.Mutex
	out  io.Writer
	opts RenderOptions
	now  func() time.Time
}

func NewRenderer(out io.Writer, opts RenderOptions, now func() time.Time) *Renderer {
	return &Renderer{out: out, opts: opts, now: now}
}

// Consume implements contract.EventSink for live updates.
func (r *Renderer) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.NotificationRaised:
		r.printf("%s\n", r.notification(evt.Notification))
	case event.MessagePosted:
		if r.opts.LiveFeed {
			m := evt.Message
			r.printf("%s %s: %s\n", r.avatar(m.Sender), domain.FormatWallet(m.Sender), m.Text)
		}
	case event.WalletChanged:
		if evt.State == domain.WalletConnecting {
			r.printf("%s\n", r.paint(color.Gray, "Connecting..."))
		}
	case event.ViewChanged:
		r.printf("%s\n", r.paint(color.Cyan, "View: "+string(evt.View)))
	}
	return nil
}

// Snapshot renders the current view of the board.
func (r *Renderer) Snapshot(s domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.header(s)
	switch s.Status.View {
	case domain.ViewStats:
		r.stats(s.Stats)
	case domain.ViewModeration:
		fmt.Fprintln(r.out, "Moderation view, use \"queue\" to list entries")
	default:
		if s.Status.ShowOnboarding {
			fmt.Fprintln(r.out, r.paint(color.Yellow, "Welcome! Connect a wallet to post, type \"skip\" to hide this."))
		}
		visible, more := s.Window()
		r.feed(visible)
		if more {
			fmt.Fprintf(r.out, "%d more, type \"more\"\n", len(s.Messages)-len(visible))
		}
	}
}

// Profile renders the messages of the connected wallet.
func (r *Renderer) Profile(s domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !s.Status.Connected() {
		fmt.Fprintln(r.out, "No wallet connected")
		return
	}
	mine := s.MessagesBy(s.Status.Address)
	fmt.Fprintf(r.out, "%s  %d messages\n", s.Status.Address, len(mine))
	r.feed(mine)
}

// Queue renders the moderation entries for a filter.
func (r *Renderer) Queue(entries []moderation.Entry, counts map[moderation.Filter]int, selected []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "all %d | flagged %d | pending %d\n",
		counts[moderation.FilterAll], counts[moderation.FilterFlagged], counts[moderation.FilterPending])

	picked := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		picked[id] = struct{}{}
	}
	table := r.table([]string{"#", "Sel", "Sender", "Text", "Flags", "Lang", "Decision"})
	for i, e := range entries {
		mark := ""
		if _, ok := picked[e.Message.ID]; ok {
			mark = "x"
		}
		flags := strings.Join(e.Flags, ",")
		if flags != "" {
			flags = r.paint(color.Red, flags)
		}
		table.Append([]string{
			strconv.Itoa(i + 1), mark, domain.FormatWallet(e.Message.Sender), e.Message.Text,
			flags, e.Lang, string(e.Decision),
		})
	}
	table.Render()
}

func (r *Renderer) Error(err error) {
	r.printf("%s\n", r.paint(color.Red, err.Error()))
}

func (r *Renderer) Println(text string) {
	r.printf("%s\n", text)
}

func (r *Renderer) header(s domain.Snapshot) {
	wallet := "Connect Wallet"
	switch s.Status.Wallet {
	case domain.WalletConnecting:
		wallet = "Connecting..."
	case domain.WalletConnected:
		wallet = domain.FormatWallet(s.Status.Address)
	}
	fmt.Fprintf(r.out, "%s  [%s]  %s\n",
		r.paint(color.Bold, "Aptos Board"), s.Status.View, r.paint(color.Green, wallet))
	if n := s.Status.Notification; n != nil {
		fmt.Fprintln(r.out, r.notification(*n))
	}
}

func (r *Renderer) feed(messages []domain.Message) {
	now := r.now()
	table := r.table([]string{"#", "", "Sender", "Message", "When"})
	for i, m := range messages {
		table.Append([]string{
			strconv.Itoa(i + 1),
			r.avatar(m.Sender),
			domain.FormatWallet(m.Sender),
			m.Text,
			domain.RelativeTime(m.CreatedAt, now),
		})
	}
	table.Render()
}

func (r *Renderer) stats(stats domain.Stats) {
	table := r.table([]string{"Total messages", "Unique users", "Active now"})
	table.Append([]string{
		strconv.Itoa(stats.TotalMessages),
		strconv.Itoa(stats.UniqueUsers),
		strconv.Itoa(stats.ActiveNow),
	})
	table.Render()
}

func (r *Renderer) table(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader(header)
	table.SetAutoWrapText(r.opts.WrapText)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func (r *Renderer) notification(n domain.Notification) string {
	switch n.Severity {
	case domain.SeveritySuccess:
		return r.paint(color.Green, "✓ "+n.Text)
	case domain.SeverityError:
		return r.paint(color.Red, "✗ "+n.Text)
	default:
		return r.paint(color.Blue, "• "+n.Text)
	}
}

func (r *Renderer) avatar(sender string) string {
	initials := domain.AvatarInitials(sender)
	if !r.opts.Colours {
		return initials
	}
	return color.HEX(domain.AvatarColor(sender), true).Sprint(color.White.Render(initials))
}

func (r *Renderer) paint(c color.Color, text string) string {
	if !r.opts.Colours {
		return text
	}
	return c.Render(text)
}

func (r *Renderer) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}
