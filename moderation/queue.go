package moderation

import (
	"aptos-board/domain"
	"aptos-board/domain/event"
	"aptos-board/errors"
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

type Filter string

const (
	FilterAll     Filter = "all"
	FilterFlagged Filter = "flagged"
	FilterPending Filter = "pending"
)

type Action string

const (
	ActionHide    Action = "hide"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
)

// Entry is one message under review.
// Decision stays empty until a bulk action touches the entry.
type Entry struct {
	Message  domain.Message
	Flags    []string
	Lang     string
	Decision Action
}

func (e Entry) Flagged() bool { return len(e.Flags) > 0 }

func (e Entry) Pending() bool { return e.Decision == "" }

// Queue collects posted messages for the moderation view.
// Actions are recorded on the queue only, the board keeps showing every message.
type Queue struct {
	mu        sync.RWMutex
	log       *slog.Logger
	moderator Moderator
	entries   []Entry
	index     map[string]int
	selected  map[string]struct{}
}

func NewQueue(log *slog.Logger, moderator Moderator) *Queue {
	return &Queue{
		log:       log,
		moderator: moderator,
		index:     make(map[string]int),
		selected:  make(map[string]struct{}),
	}
}

// Consume implements contract.EventSink.
func (q *Queue) Consume(_ context.Context, e event.DomainEvent) error {
	posted, ok := e.(event.MessagePosted)
	if !ok {
		return nil
	}
	q.Track(posted.Message)
	return nil
}

// Track adds messages to the queue, skipping ids already known.
func (q *Queue) Track(messages ...domain.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, m := range messages {
		if _, ok := q.index[m.ID]; ok {
			continue
		}
		entry := Entry{
			Message: m,
			Flags:   q.moderator.Scan(m.Text),
			Lang:    detectLang(m.Text),
		}
		if entry.Flagged() {
			q.log.Info("Message flagged", "id", m.ID, "sender", m.Sender, "words", entry.Flags)
		}
		q.index[m.ID] = len(q.entries)
		q.entries = append(q.entries, entry)
	}
}

// Entries returns the entries matching the filter, newest first.
func (q *Queue) Entries(filter Filter) []Entry {
	q.mu.RLock()
	defer q.mu.RUnlock()
	matched := lo.Filter(q.entries, func(e Entry, _ int) bool {
		return filter.match(e)
	})
	slices.SortStableFunc(matched, func(a, b Entry) int {
		return b.Message.CreatedAt.Compare(a.Message.CreatedAt)
	})
	return matched
}

// Counts returns the number of entries per filter.
func (q *Queue) Counts() map[Filter]int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return map[Filter]int{
		FilterAll:     len(q.entries),
		FilterFlagged: lo.CountBy(q.entries, FilterFlagged.match),
		FilterPending: lo.CountBy(q.entries, FilterPending.match),
	}
}

// Toggle flips the selection of a message and reports whether it is now selected.
func (q *Queue) Toggle(id string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.index[id]; !ok {
		return false, errors.ErrMessageNotFound
	}
	if _, ok := q.selected[id]; ok {
		delete(q.selected, id)
		return false, nil
	}
	q.selected[id] = struct{}{}
	return true, nil
}

func (q *Queue) Selected() []string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	ids := lo.Keys(q.selected)
	slices.Sort(ids)
	return ids
}

// Apply records the action on every selected entry and clears the selection.
// It returns the affected ids.
func (q *Queue) Apply(action Action) ([]string, error) {
	switch action {
	case ActionHide, ActionDelete, ActionApprove:
	default:
		return nil, errors.ErrUnknownAction
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	ids := lo.Keys(q.selected)
	slices.Sort(ids)
	for _, id := range ids {
		q.entries[q.index[id]].Decision = action
	}
	clear(q.selected)
	q.log.Info("Moderation action", "action", action, "count", len(ids), "ids", ids)
	return ids, nil
}

func (f Filter) match(e Entry) bool {
	switch f {
	case FilterFlagged:
		return e.Flagged()
	case FilterPending:
		return e.Pending()
	default:
		return true
	}
}

// ParseFilter maps a filter name to a Filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterFlagged, FilterPending:
		return Filter(s)
	default:
		return FilterAll
	}
}

func detectLang(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
