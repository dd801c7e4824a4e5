package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/metrics"
)

// Publisher is what the generator emits through.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Listener handles one event. A returned error is logged and otherwise ignored.
type Listener func(ctx context.Context, e Event) error

type registration struct {
	id       uint64
	kind     Kind // empty for OnAll
	listener Listener
}

// Bus fans events out to listeners synchronously, in registration order.
// A failing or panicking listener never reaches the publisher or the other listeners.
type Bus struct {
	mu      sync.RWMutex
	nextID  uint64
	regs    []registration
	logger  *slog.Logger
	metrics metrics.GeneratorMetrics
}

// NewBus returns an empty bus. A nil metrics records nothing.
func NewBus(logger *slog.Logger, m metrics.GeneratorMetrics) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NoOp{}
	}
	return &Bus{logger: logger, metrics: m}
}

// On registers l for one kind and returns its unsubscribe func.
func (b *Bus) On(kind Kind, l Listener) func() {
	return b.add(kind, l)
}

// OnAll registers l for every kind.
func (b *Bus) OnAll(l Listener) func() {
	return b.add("", l)
}

// Subscribe registers a listener typed on the event struct it handles.
func Subscribe[E Event](b *Bus, l func(ctx context.Context, e E) error) func() {
	var zero E
	return b.On(zero.Kind(), func(ctx context.Context, e Event) error {
		typed, ok := e.(E)
		if !ok {
			return fmt.Errorf("unexpected event type %T for %s", e, zero.Kind())
		}
		return l(ctx, typed)
	})
}

func (b *Bus) add(kind Kind, l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.regs = append(b.regs, registration{id: id, kind: kind, listener: l})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.regs {
		if r.id == id {
			b.regs = append(b.regs[:i:i], b.regs[i+1:]...)
			return
		}
	}
}

// Len reports the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.regs)
}

// Publish delivers e to every matching listener before returning.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	targets := make([]registration, 0, len(b.regs))
	for _, r := range b.regs {
		if r.kind == "" || r.kind == e.Kind() {
			targets = append(targets, r)
		}
	}
	b.mu.RUnlock()

	for _, r := range targets {
		if err := b.deliver(ctx, r.listener, e); err != nil {
			b.metrics.RecordListenerFailure(string(e.Kind()))
			b.logger.WarnContext(ctx, "Event listener failed",
				attr.String("kind", string(e.Kind())),
				attr.RunID(e.Metadata().RunID),
				attr.GuildID(e.Metadata().GuildID),
				attr.Error(err),
			)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, l Listener, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return l(ctx, e)
}

// Discard is a Publisher that drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) {}
