package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"jsplit/internal/domain"
)

const defaultNamespace = "jsplit"

// Exporter holds the gauges describing one split plan
type Exporter struct {
	namespace   string
	constLabels map[string]string
	registry    *prometheus.Registry

	groupDuration  *prometheus.GaugeVec
	groupKeys      *prometheus.GaugeVec
	totalSeconds   prometheus.Gauge
	targetSeconds  prometheus.Gauge
	groupCount     prometheus.Gauge
	suiteCount     prometheus.Gauge
	skippedReports prometheus.Gauge
}

// NewExporter creates an Exporter on its own registry so Go runtime
// collectors never end up in the textfile.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		namespace:   defaultNamespace,
		constLabels: map[string]string{},
		registry:    prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.groupDuration = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   e.namespace,
		Name:        "group_duration_seconds",
		Help:        "Summed suite duration assigned to each group.",
		ConstLabels: e.constLabels,
	}, []string{"group"})
	e.groupKeys = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   e.namespace,
		Name:        "group_keys",
		Help:        "Number of category keys in each group, labelled with the keys.",
		ConstLabels: e.constLabels,
	}, []string{"group", "keys"})
	e.totalSeconds = e.gauge("total_seconds", "Summed duration of all suites in the plan.")
	e.targetSeconds = e.gauge("target_seconds", "Per-group target duration used by the split.")
	e.groupCount = e.gauge("groups", "Number of groups the plan produced.")
	e.suiteCount = e.gauge("suites", "Number of suites that fed the plan.")
	e.skippedReports = e.gauge("skipped_reports", "Report files that could not be parsed.")

	for _, c := range []prometheus.Collector{
		e.groupDuration, e.groupKeys, e.totalSeconds, e.targetSeconds,
		e.groupCount, e.suiteCount, e.skippedReports,
	} {
		if err := e.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return e, nil
}

func (e *Exporter) gauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   e.namespace,
		Name:        name,
		Help:        help,
		ConstLabels: e.constLabels,
	})
}

// Observe replaces the exported values with the ones from plan.
// Groups are labelled with their 1-based index.
func (e *Exporter) Observe(plan *domain.Plan) {
	e.groupDuration.Reset()
	e.groupKeys.Reset()
	for i, group := range plan.Groups {
		label := strconv.Itoa(i + 1)
		e.groupDuration.WithLabelValues(label).Set(group.Duration())
		e.groupKeys.WithLabelValues(label, group.Keys()).Set(float64(len(group)))
	}
	e.totalSeconds.Set(plan.Meta.TotalSeconds)
	e.targetSeconds.Set(plan.Meta.TargetSeconds)
	e.groupCount.Set(float64(len(plan.Groups)))
	e.suiteCount.Set(float64(plan.Meta.Suites))
	e.skippedReports.Set(float64(len(plan.Skipped)))
}

// WriteTextfile writes all gathered metrics to path atomically.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("write metrics file %s: %w", path, err)
	}
	return nil
}

// WritePlan observes plan and writes it to path in one step.
func WritePlan(path string, plan *domain.Plan, opts ...Option) error {
	e, err := NewExporter(opts...)
	if err != nil {
		return err
	}
	e.Observe(plan)
	return e.WriteTextfile(path)
}
