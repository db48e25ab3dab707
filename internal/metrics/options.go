// Package metrics exports split plans as Prometheus metrics in the textfile
// collector format, so CI hosts running node_exporter can chart lane balance.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(e *Exporter) {
		if namespace != "" {
			e.namespace = namespace
		}
	}
}

// WithConstLabels adds labels attached to every exported series.
func WithConstLabels(labels map[string]string) Option {
	return func(e *Exporter) {
		if labels != nil {
			e.constLabels = labels
		}
	}
}

// WithRegistry sets the registry metrics are registered on and gathered from.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(e *Exporter) {
		if registry != nil {
			e.registry = registry
		}
	}
}
