package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vista/internal/events"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncEvent("theme", events.Play, 3)
	pr.IncEvent("theme", events.Play, 1)
	pr.IncHandlerPanic("theme", events.Play)
	pr.ObserveOverflow("footer", 3, 2)
	pr.IncFullscreenTransition("native", true)
	pr.IncFullscreenError()
	pr.IncTemplateChange("")
	pr.IncTimerFired("resize")
	pr.IncTimerFired("resize")

	values := gather(t, reg)
	assert.Equal(t, 2.0, values["vista_events_emitted_total"])
	assert.Equal(t, 4.0, values["vista_event_deliveries_total"])
	assert.Equal(t, 2.0, values["vista_overflowed_controls"])
	assert.Equal(t, 1.0, values["vista_template_changes_total"])
	assert.Equal(t, 1.0, values["vista_handler_panics_total"])
	assert.Equal(t, 2.0, values["vista_timers_fired_total"])
}

// gather returns the first sample of every family by name.
func gather(t *testing.T, reg *prom.Registry) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]float64, len(mfs))
	for _, mf := range mfs {
		m := mf.GetMetric()
		if len(m) == 0 {
			continue
		}
		switch {
		case m[0].GetCounter() != nil:
			out[mf.GetName()] = m[0].GetCounter().GetValue()
		case m[0].GetGauge() != nil:
			out[mf.GetName()] = m[0].GetGauge().GetValue()
		}
	}
	return out
}

func TestHandlerServesMetrics(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncFullscreenError()

	srv := httptest.NewServer(pr.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vista_fullscreen_errors_total")
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncEvent("x", events.Play, 1)
		pr.ObserveOverflow("header", 0, 0)
		pr.IncTemplateChange("pcLive")
		pr.IncTimerFired("autoHide")
	})
}
