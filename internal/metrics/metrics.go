package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CallbacksReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocket_chat_inbound_callbacks_total",
		Help: "The total number of inbound webhook callbacks received",
	})

	MessagesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocket_chat_inbound_messages_stored_total",
		Help: "The total number of inbound messages persisted",
	})

	SignatureFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocket_chat_signature_failures_total",
		Help: "The total number of callbacks rejected for a bad signature",
	})

	RejectedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocket_chat_rejected_requests_total",
		Help: "The total number of callbacks rejected before persistence",
	})
)
