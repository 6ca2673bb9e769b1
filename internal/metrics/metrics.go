package metrics

import "github.com/prometheus/client_golang/prometheus"

// BotMetrics exposes counters and histograms for webhook handling and sends.
type BotMetrics struct {
	eventsTotal    *prometheus.CounterVec
	outboundTotal  *prometheus.CounterVec
	webhookLatency *prometheus.HistogramVec
}

func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ulandbot",
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Total LINE webhook events by kind and outcome",
		}, []string{"kind", "status"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ulandbot",
			Subsystem: "messaging",
			Name:      "outbound_total",
			Help:      "Total LINE send calls by channel (reply, push)",
		}, []string{"channel", "status"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ulandbot",
			Subsystem: "webhook",
			Name:      "latency_seconds",
			Help:      "Latency of webhook delivery processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.eventsTotal, m.outboundTotal, m.webhookLatency)
	return m
}

func (m *BotMetrics) ObserveEvent(kind, status string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(kind, status).Inc()
}

func (m *BotMetrics) ObserveOutbound(channel string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.outboundTotal.WithLabelValues(channel, status).Inc()
}

func (m *BotMetrics) ObserveWebhookLatency(status string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(status).Observe(seconds)
}
