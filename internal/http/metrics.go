package http

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "webmaster_client"

// instrumentTransport counts and times every attempt sent through next.
// Collectors already present on registerer are reused.
func instrumentTransport(registerer prometheus.Registerer, next http.RoundTripper) http.RoundTripper {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "requests_total",
		Help:      "Total number of requests sent to the Webmaster API.",
	}, []string{"code", "method"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "request_duration_seconds",
		Help:      "Latency of requests sent to the Webmaster API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	requests = register(registerer, requests)
	duration = register(registerer, duration)

	return promhttp.InstrumentRoundTripperCounter(requests,
		promhttp.InstrumentRoundTripperDuration(duration, next))
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing
		}
	}

	return collector
}
