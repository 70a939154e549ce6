// Package dispatcher walks a webhook event batch, runs chat commands against the keyword
// store and sends one reply per answerable event.
package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/keywatch/keyword-bot/internal/metrics"
	"github.com/keywatch/keyword-bot/internal/services/command"
	"github.com/keywatch/keyword-bot/internal/services/eventdedup"
	"github.com/keywatch/keyword-bot/internal/services/keywordstore"
	"github.com/keywatch/keyword-bot/internal/services/replysender"
	"github.com/rs/zerolog"
)

// KeywordStore loads and persists the user keyword registry.
type KeywordStore interface {
	Load(ctx context.Context) *keywordstore.Registry
	Save(ctx context.Context, reg *keywordstore.Registry) error
}

// ReplySender delivers a reply text for a reply token.
type ReplySender interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// Options tune the dispatcher.
type Options struct {
	// Dedup suppresses redelivered events. Nil disables suppression.
	Dedup *eventdedup.Cache
	// Serialize runs the load, mutate and save part of whole batches one at a time within
	// the process. Reply API calls happen outside the lock.
	Serialize bool
}

// Dispatcher handles webhook event batches.
type Dispatcher struct {
	store  KeywordStore
	sender ReplySender
	dedup  *eventdedup.Cache
	mu     *sync.Mutex
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(store KeywordStore, sender ReplySender, opts Options) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		sender: sender,
		dedup:  opts.Dedup,
	}
	if opts.Serialize {
		d.mu = &sync.Mutex{}
	}
	return d
}

// batch is the state of one Handle call. The registry is loaded on first use.
type batch struct {
	reg     *keywordstore.Registry
	stats   Stats
	pending []pendingReply
}

type pendingReply struct {
	ctx        context.Context
	replyToken string
	text       string
}

// Handle processes the events of payload in order, then sends the collected replies in
// the same order. Per-event failures are logged and never abort the batch. With
// Options.Serialize only event processing holds the lock; replies are sent after it is
// released.
func (d *Dispatcher) Handle(ctx context.Context, payload *Payload) Stats {
	b := &batch{}
	if payload == nil {
		return b.stats
	}
	d.process(ctx, b, payload)
	for _, p := range b.pending {
		d.reply(p.ctx, b, p.replyToken, p.text)
	}
	return b.stats
}

func (d *Dispatcher) process(ctx context.Context, b *batch, payload *Payload) {
	if d.mu != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
	}

	logger := zerolog.Ctx(ctx)
	for i, raw := range payload.Events {
		b.stats.Events++
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			b.stats.Malformed++
			metrics.WebhookEvents.WithLabelValues(metrics.EventMalformed).Inc()
			logger.Warn().Err(err).Int("index", i).Msg("Skipping malformed event")
			continue
		}
		d.handleEvent(ctx, b, ev)
	}
}

func (d *Dispatcher) handleEvent(ctx context.Context, b *batch, ev Event) {
	logger := zerolog.Ctx(ctx).With().
		Str("event_type", ev.Type).
		Str("user_id", ev.Source.UserID).
		Str("webhook_event_id", ev.WebhookEventID).
		Logger()

	switch ev.Type {
	case EventTypeMessage, EventTypeFollow:
		metrics.WebhookEvents.WithLabelValues(ev.Type).Inc()
	default:
		metrics.WebhookEvents.WithLabelValues(metrics.EventOther).Inc()
		logger.Debug().Msg("Ignoring event type")
		return
	}

	if ev.ReplyToken == "" {
		logger.Debug().Msg("Ignoring event without reply token")
		return
	}

	if !d.dedup.FirstSeen(ev.WebhookEventID) {
		b.stats.Redelivered++
		metrics.RedeliveriesSkipped.Inc()
		logger.Info().
			Bool("is_redelivery", ev.DeliveryContext != nil && ev.DeliveryContext.IsRedelivery).
			Msg("Skipping already handled event")
		return
	}

	var reply string
	switch ev.Type {
	case EventTypeFollow:
		reply = command.MsgFollowGreeting
	case EventTypeMessage:
		reply = d.runCommand(logger.WithContext(ctx), b, ev)
	}

	b.pending = append(b.pending, pendingReply{
		ctx:        logger.WithContext(ctx),
		replyToken: ev.ReplyToken,
		text:       reply,
	})
}

func (d *Dispatcher) runCommand(ctx context.Context, b *batch, ev Event) string {
	logger := zerolog.Ctx(ctx)
	cmd := command.Parse(ev.Text())
	metrics.Commands.WithLabelValues(string(cmd.Kind)).Inc()

	// Senders without a user id (group and room sources) run against a scratch registry:
	// they get their reply but nothing is stored under an empty key.
	if ev.Source.UserID == "" {
		res := command.Execute(keywordstore.NewRegistry(), "", cmd)
		if res.Mutated {
			logger.Warn().Str("command", string(cmd.Kind)).Msg("Not storing keywords for event without user id")
		}
		return res.Reply
	}

	if b.reg == nil {
		b.reg = d.store.Load(ctx)
	}
	res := command.Execute(b.reg, ev.Source.UserID, cmd)
	logger.Debug().
		Str("command", string(cmd.Kind)).
		Strs("added", res.Added).
		Strs("removed", res.Removed).
		Msg("Command executed")

	if res.Mutated {
		if err := d.store.Save(ctx, b.reg); err != nil {
			b.stats.SaveErrors++
			metrics.StoreSaves.WithLabelValues(metrics.SaveError).Inc()
			logger.Error().Err(err).Msg("Failed to save keyword store")
		} else {
			metrics.StoreSaves.WithLabelValues(metrics.SaveOK).Inc()
		}
	}
	return res.Reply
}

func (d *Dispatcher) reply(ctx context.Context, b *batch, replyToken, text string) {
	logger := zerolog.Ctx(ctx)
	err := d.sender.Reply(ctx, replyToken, text)
	switch {
	case err == nil:
		b.stats.Replies++
		metrics.Replies.WithLabelValues(metrics.ReplySent).Inc()
	case errors.Is(err, replysender.ErrNoAccessToken):
		metrics.Replies.WithLabelValues(metrics.ReplySkipped).Inc()
		logger.Warn().Err(err).Msg("Reply skipped")
	default:
		metrics.Replies.WithLabelValues(metrics.ReplyFailed).Inc()
		logger.Error().Err(err).Msg("Failed to send reply")
	}
}
