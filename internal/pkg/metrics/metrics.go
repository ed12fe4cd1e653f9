// Package metrics exposes the Prometheus collectors of the ordering service.
// All methods are safe on a nil *Collectors so components can run without metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ordering"

// Finalization outcomes.
const (
	OutcomeCommitted         = "committed"
	OutcomeRejected          = "rejected"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeFailed            = "failed"
)

type Collectors struct {
	turns              *prometheus.CounterVec
	emptyReplies       prometheus.Counter
	finalizations      *prometheus.CounterVec
	classifierFailures prometheus.Counter
}

// NewCollectors creates the collectors and registers them with reg.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Conversation turns processed, by classified intent.",
		}, []string{"intent"}),
		emptyReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_replies_total",
			Help:      "Turns whose computed reply was empty and replaced by the fallback.",
		}),
		finalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finalizations_total",
			Help:      "Order finalization attempts, by outcome.",
		}, []string{"outcome"}),
		classifierFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_failures_total",
			Help:      "Classifier calls that failed and were replaced by a neutral intent.",
		}),
	}

	for _, collector := range []prometheus.Collector{c.turns, c.emptyReplies, c.finalizations, c.classifierFailures} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Collectors) Turn(intent string) {
	if c == nil {
		return
	}
	c.turns.WithLabelValues(intent).Inc()
}

func (c *Collectors) EmptyReply() {
	if c == nil {
		return
	}
	c.emptyReplies.Inc()
}

func (c *Collectors) Finalization(outcome string) {
	if c == nil {
		return
	}
	c.finalizations.WithLabelValues(outcome).Inc()
}

func (c *Collectors) ClassifierFailure() {
	if c == nil {
		return
	}
	c.classifierFailures.Inc()
}
