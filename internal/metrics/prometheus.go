package metrics

import (
	"net/http"
	"strconv"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/five82/vista/internal/events"
)

const namespace = "vista"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	reg             *prom.Registry
	events          *prom.CounterVec
	deliveries      *prom.CounterVec
	panics          *prom.CounterVec
	resolutions     *prom.CounterVec
	overflowed      *prom.GaugeVec
	transitions     *prom.CounterVec
	fullscreenFails prom.Counter
	templates       *prom.CounterVec
	timers          *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg. A nil
// reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.events = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "events_emitted_total",
			Help:      "Events emitted per bus",
		}, []string{"bus", "event"})
		pr.deliveries = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "event_deliveries_total",
			Help:      "Handler invocations per bus",
		}, []string{"bus"})
		pr.panics = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "handler_panics_total",
			Help:      "Recovered handler panics per bus and event",
		}, []string{"bus", "event"})
		pr.resolutions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "overflow_resolutions_total",
			Help:      "Overflow resolutions per bar",
		}, []string{"bar"})
		pr.overflowed = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "overflowed_controls",
			Help:      "Controls currently in the More panel per bar",
		}, []string{"bar"})
		pr.transitions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fullscreen_transitions_total",
			Help:      "Settled fullscreen transitions by mode and direction",
		}, []string{"mode", "fullscreen"})
		pr.fullscreenFails = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fullscreen_errors_total",
			Help:      "Rejected or unsupported fullscreen requests",
		})
		pr.templates = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "template_changes_total",
			Help:      "Applied template changes by template name",
		}, []string{"template"})
		pr.timers = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "timers_fired_total",
			Help:      "Timer callbacks run per timer key",
		}, []string{"timer"})
		reg.MustRegister(pr.events, pr.deliveries, pr.panics, pr.resolutions, pr.overflowed,
			pr.transitions, pr.fullscreenFails, pr.templates, pr.timers)
	})
	return pr
}

func (p *PrometheusRecorder) IncEvent(bus string, event events.Name, handlers int) {
	if p == nil || p.events == nil {
		return
	}
	p.events.WithLabelValues(bus, string(event)).Inc()
	p.deliveries.WithLabelValues(bus).Add(float64(handlers))
}

func (p *PrometheusRecorder) IncHandlerPanic(bus string, event events.Name) {
	if p == nil || p.panics == nil {
		return
	}
	p.panics.WithLabelValues(bus, string(event)).Inc()
}

func (p *PrometheusRecorder) ObserveOverflow(bar string, _ int, overflowed int) {
	if p == nil || p.resolutions == nil {
		return
	}
	p.resolutions.WithLabelValues(bar).Inc()
	p.overflowed.WithLabelValues(bar).Set(float64(overflowed))
}

func (p *PrometheusRecorder) IncFullscreenTransition(mode string, fullscreen bool) {
	if p == nil || p.transitions == nil {
		return
	}
	p.transitions.WithLabelValues(mode, strconv.FormatBool(fullscreen)).Inc()
}

func (p *PrometheusRecorder) IncFullscreenError() {
	if p == nil || p.fullscreenFails == nil {
		return
	}
	p.fullscreenFails.Inc()
}

func (p *PrometheusRecorder) IncTemplateChange(name string) {
	if p == nil || p.templates == nil {
		return
	}
	if name == "" {
		name = "custom"
	}
	p.templates.WithLabelValues(name).Inc()
}

func (p *PrometheusRecorder) IncTimerFired(key string) {
	if p == nil || p.timers == nil {
		return
	}
	p.timers.WithLabelValues(key).Inc()
}

// Handler serves the recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
