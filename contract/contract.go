//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"aptos-board/domain"
	"aptos-board/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Random is the subset of *rand.Rand the synthetic feed needs.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// MessageAppender is the side of the session store the synthetic feed writes to.
type MessageAppender interface {
	AppendSyntheticMessage(cmd domain.SyntheticMessageCommand) (domain.Message, error)
	Notify(severity domain.Severity, text string) error
}

type Clipboard interface {
	WriteAll(text string) error
}

// Preferences is a small local key-value store.
type Preferences interface {
	GetBool(key string) (value bool, found bool, err error)
	SetBool(key string, value bool) error
}

// Authorizer resolves the admin capability of a connected wallet.
type Authorizer interface {
	IsAdmin(address string) bool
}
