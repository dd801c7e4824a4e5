package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Recorder is what the journal handlers write to. *Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, e guildevents.GuildGenerationEvent) error
	RecordRequest(ctx context.Context, r guildevents.GuildGenerationRequestedEvent) error
}

// JournalRouter feeds generation events from the bus into the journal.
type JournalRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	recorder   Recorder
	tracer     trace.Tracer
}

// NewJournalRouter creates a new JournalRouter.
func NewJournalRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	recorder Recorder,
	tracer trace.Tracer,
) *JournalRouter {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("journal")
	}
	return &JournalRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		recorder:   recorder,
		tracer:     tracer,
	}
}

// Configure sets up the router.
func (r *JournalRouter) Configure(ctx context.Context) error {
	r.Router.AddMiddleware(
		r.ackExhausted,
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
		middleware.Recoverer,
		r.traceHandler,
	)

	handlers := map[string]message.NoPublishHandlerFunc{
		guildevents.GuildGenerationEventTopic:     r.HandleGenerationEvent,
		guildevents.GuildGenerationRequestedTopic: r.HandleGenerationRequested,
	}
	for topic, fn := range handlers {
		r.Router.AddConsumerHandler(fmt.Sprintf("journal.%s", topic), topic, r.subscriber, fn)
	}

	r.logger.InfoContext(ctx, "Journal router configured successfully",
		attr.Int("registered_handlers", len(handlers)))
	return nil
}

// HandleGenerationEvent stores one lifecycle event.
func (r *JournalRouter) HandleGenerationEvent(msg *message.Message) error {
	var e guildevents.GuildGenerationEvent
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		// A payload that cannot be decoded never will be; drop it instead of retrying.
		r.logger.Error("Dropping undecodable generation event",
			attr.MessageID(msg),
			attr.Error(err),
		)
		return nil
	}
	if err := r.recorder.Record(msg.Context(), e); err != nil {
		return fmt.Errorf("failed to journal %s event: %w", e.Kind, err)
	}
	return nil
}

// HandleGenerationRequested stores who asked for a run.
func (r *JournalRouter) HandleGenerationRequested(msg *message.Message) error {
	var req guildevents.GuildGenerationRequestedEvent
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		r.logger.Error("Dropping undecodable generation request",
			attr.MessageID(msg),
			attr.Error(err),
		)
		return nil
	}
	if err := r.recorder.RecordRequest(msg.Context(), req); err != nil {
		return fmt.Errorf("failed to journal request for guild %s: %w", req.GuildID, err)
	}
	return nil
}

// ackExhausted acks a message whose retries are spent. The forwarding pub/sub blocks
// publishers until ack, so a nack would redeliver forever and stall the generation run.
func (r *JournalRouter) ackExhausted(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := h(msg)
		if err != nil {
			r.logger.Error("Dropping message after journal retries",
				attr.MessageID(msg),
				attr.String("handler", message.HandlerNameFromCtx(msg.Context())),
				attr.Error(err),
			)
			return nil, nil
		}
		return msgs, nil
	}
}

func (r *JournalRouter) traceHandler(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := r.tracer.Start(msg.Context(), "journal."+message.HandlerNameFromCtx(msg.Context()),
			trace.WithAttributes(
				attribute.String("messaging.message_id", msg.UUID),
				attribute.String("correlation_id", attr.ExtractCorrelationID(msg)),
			),
		)
		defer span.End()
		msg.SetContext(ctx)

		msgs, err := h(msg)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return msgs, err
	}
}

// Close gracefully shuts down the router
func (r *JournalRouter) Close() error {
	if r.Router != nil {
		return r.Router.Close()
	}
	return nil
}
