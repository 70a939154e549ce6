// Package metrics holds the Prometheus instruments served on the monitoring port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "keyword_bot"

// Label names.
const (
	LabelType   = "type"
	LabelKind   = "kind"
	LabelResult = "result"
)

// Label values.
const (
	EventMessage   = "message"
	EventFollow    = "follow"
	EventOther     = "other"
	EventMalformed = "malformed"

	ReplySent    = "sent"
	ReplyFailed  = "failed"
	ReplySkipped = "skipped"

	SaveOK    = "ok"
	SaveError = "error"
)

// Webhook metrics
var (
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Webhook events received, by event type",
		},
		[]string{LabelType},
	)

	RedeliveriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redeliveries_skipped_total",
			Help:      "Webhook events skipped because their id was already handled",
		},
	)
)

// Bot metrics
var (
	Commands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Interpreted chat commands, by kind",
		},
		[]string{LabelKind},
	)

	Replies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Reply API calls, by result",
		},
		[]string{LabelResult},
	)

	StoreSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_saves_total",
			Help:      "Keyword store writes, by result",
		},
		[]string{LabelResult},
	)
)
