package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ulandresort/ulandbot/internal/catalog"
	"github.com/ulandresort/ulandbot/internal/intent"
	"github.com/ulandresort/ulandbot/internal/line"
	"github.com/ulandresort/ulandbot/internal/logging"
	"github.com/ulandresort/ulandbot/internal/metrics"
	"github.com/ulandresort/ulandbot/internal/reply"
)

var tracer = otel.Tracer("ulandbot.internal.bot")

// Parser verifies a webhook delivery and decodes its events.
type Parser interface {
	Parse(body []byte, signature string) ([]line.Event, error)
}

// Messenger is the LINE send side: replies, pushes and profile lookups.
type Messenger interface {
	Reply(ctx context.Context, replyToken string, msgs []catalog.Message) error
	Push(ctx context.Context, to string, msgs []catalog.Message) error
	DisplayName(ctx context.Context, userID string) (string, error)
}

// BatchPolicy decides what happens to the rest of a delivery after one of
// its events fails.
type BatchPolicy string

const (
	// ContinueOnError processes every event and reports all failures.
	ContinueOnError BatchPolicy = "continue"
	// AbortOnError stops at the first failing event.
	AbortOnError BatchPolicy = "abort"
)

// Result counts what happened to the events of one delivery.
type Result struct {
	Received int
	Replied  int
	Pushed   int
	Skipped  int
	Failed   int
}

type Dispatcher struct {
	parser    Parser
	messenger Messenger
	resolver  *intent.Resolver
	composer  *reply.Composer
	policy    BatchPolicy
	logger    *logging.Logger
	metrics   *metrics.BotMetrics
}

type Option func(*Dispatcher)

func WithBatchPolicy(p BatchPolicy) Option {
	return func(d *Dispatcher) { d.policy = p }
}

func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithMetrics(m *metrics.BotMetrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

func NewDispatcher(parser Parser, messenger Messenger, resolver *intent.Resolver, composer *reply.Composer, opts ...Option) *Dispatcher {
	if parser == nil {
		panic("bot: parser cannot be nil")
	}
	if messenger == nil {
		panic("bot: messenger cannot be nil")
	}
	d := &Dispatcher{
		parser:    parser,
		messenger: messenger,
		resolver:  resolver,
		composer:  composer,
		policy:    ContinueOnError,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle verifies one webhook delivery and answers its events one by one,
// in delivery order. A rejected delivery returns a DispatchError of kind
// KindSignatureInvalid or KindMalformedPayload and no event is processed.
// Otherwise the returned error joins the per-event failures.
func (d *Dispatcher) Handle(ctx context.Context, body []byte, signature string) (Result, error) {
	ctx, span := tracer.Start(ctx, "bot.webhook")
	defer span.End()
	start := time.Now()

	events, err := d.parser.Parse(body, signature)
	if err != nil {
		kind := KindMalformedPayload
		if errors.Is(err, ErrSignatureInvalid) {
			kind = KindSignatureInvalid
		}
		span.RecordError(err)
		d.metrics.ObserveWebhookLatency("rejected", time.Since(start).Seconds())
		return Result{}, &DispatchError{Kind: kind, Err: err}
	}
	span.SetAttributes(attribute.Int("line.events", len(events)))

	res := Result{Received: len(events)}
	var errs []error
	for i, ev := range events {
		out, err := d.handleEvent(ctx, ev)
		switch {
		case err != nil:
			res.Failed++
			errs = append(errs, err)
			d.metrics.ObserveEvent(ev.Type, "failed")
			d.logger.Error("event failed", "event_id", ev.ID, "type", ev.Type, "kind", KindOf(err), "error", err)
		case out.skipped:
			res.Skipped++
			d.metrics.ObserveEvent(ev.Type, "skipped")
			d.logger.Debug("event skipped", "event_id", ev.ID, "type", ev.Type)
		default:
			d.metrics.ObserveEvent(ev.Type, "replied")
		}
		if out.replied {
			res.Replied++
		}
		if out.pushed {
			res.Pushed++
		}

		if err != nil && d.policy == AbortOnError {
			if rest := len(events) - i - 1; rest > 0 {
				d.logger.Warn("aborting delivery after failed event", "event_id", ev.ID, "remaining", rest)
			}
			break
		}
	}

	status := "ok"
	if len(errs) > 0 {
		status = "partial"
	}
	d.metrics.ObserveWebhookLatency(status, time.Since(start).Seconds())
	return res, errors.Join(errs...)
}

type outcome struct {
	replied bool
	pushed  bool
	skipped bool
}

func (d *Dispatcher) handleEvent(ctx context.Context, ev line.Event) (out outcome, err error) {
	ctx, span := tracer.Start(ctx, "bot.event", trace.WithAttributes(
		attribute.String("line.event_type", ev.Type),
		attribute.String("line.webhook_event_id", ev.ID),
	))
	defer span.End()

	// One broken event must not take its siblings down with it.
	defer func() {
		if r := recover(); r != nil {
			err = &DispatchError{Kind: KindInternal, EventID: ev.ID, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			span.RecordError(err)
		}
	}()

	if ev.Inbound == nil || ev.ReplyToken == "" {
		out.skipped = true
		return out, nil
	}

	res := d.resolver.Resolve(ev.Inbound)
	span.SetAttributes(attribute.String("bot.intent", string(res.Intent)))

	// Group and room members chat with each other; only answer them when
	// they ask for something the bot knows.
	if _, typed := ev.Inbound.(intent.TextMessage); typed && !res.Recognized() && ev.ChatID != ev.UserID {
		out.skipped = true
		return out, nil
	}

	sc := reply.SenderContext{UserID: ev.UserID, Raw: res.Raw}
	if d.composer.NeedsProfile(res.Intent) && ev.UserID != "" {
		name, perr := d.messenger.DisplayName(ctx, ev.UserID)
		if perr != nil {
			d.logger.Warn("profile lookup failed", "event_id", ev.ID, "user_id", ev.UserID,
				"error", &DispatchError{Kind: KindProfileLookup, EventID: ev.ID, Err: perr})
		} else {
			sc.DisplayName = name
		}
	}

	r := d.composer.Compose(res.Intent, sc)

	err = d.messenger.Reply(ctx, ev.ReplyToken, r.Messages)
	d.metrics.ObserveOutbound("reply", err)
	if err != nil {
		return out, &DispatchError{Kind: KindSendFailure, EventID: ev.ID, Err: err}
	}
	out.replied = true

	d.logger.Info("event answered",
		"event_id", ev.ID,
		"type", ev.Type,
		"intent", string(res.Intent),
		"recognized", res.Recognized(),
		"messages", len(r.Messages),
		"deferred", len(r.Deferred),
	)

	if len(r.Deferred) == 0 || ev.ChatID == "" {
		return out, nil
	}
	err = d.messenger.Push(ctx, ev.ChatID, r.Deferred)
	d.metrics.ObserveOutbound("push", err)
	if err != nil {
		return out, &DispatchError{Kind: KindSendFailure, EventID: ev.ID, Err: err}
	}
	out.pushed = true
	return out, nil
}
