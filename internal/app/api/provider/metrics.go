package provider

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "stt_relay"

// PrometheusProviderMetrics implements ProviderMetrics with prometheus collectors
type PrometheusProviderMetrics struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	audioBytes *prometheus.CounterVec
}

// NewPrometheusProviderMetrics creates the provider collectors and registers them on reg.
func NewPrometheusProviderMetrics(reg prometheus.Registerer) *PrometheusProviderMetrics {
	m := &PrometheusProviderMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "provider_requests_total",
			Help:      "Transcription provider calls by outcome.",
		}, []string{"provider", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of successful transcription provider calls.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms → ~2min
		}, []string{"provider"}),
		audioBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "provider_audio_bytes_total",
			Help:      "Audio bytes successfully transcribed.",
		}, []string{"provider"}),
	}
	reg.MustRegister(m.requests, m.latency, m.audioBytes)
	return m
}

// RecordSuccess records a successful transcription
func (m *PrometheusProviderMetrics) RecordSuccess(provider string, latency time.Duration, audioBytes int) {
	m.requests.WithLabelValues(provider, "success").Inc()
	m.latency.WithLabelValues(provider).Observe(latency.Seconds())
	m.audioBytes.WithLabelValues(provider).Add(float64(audioBytes))
}

// RecordFailure records a failed transcription
func (m *PrometheusProviderMetrics) RecordFailure(provider string, errorType string) {
	m.requests.WithLabelValues(provider, errorType).Inc()
}

// ErrorCode returns the TranscriptionError code carried by err, or "unknown".
func ErrorCode(err error) string {
	var te *TranscriptionError
	if errors.As(err, &te) && te.Code != "" {
		return te.Code
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "unknown"
}

// InstrumentedProvider records metrics around another provider's calls.
type InstrumentedProvider struct {
	TranscriptionProvider
	metrics ProviderMetrics
}

// NewInstrumentedProvider wraps p so every TranscribeAudio call is recorded.
func NewInstrumentedProvider(p TranscriptionProvider, metrics ProviderMetrics) *InstrumentedProvider {
	return &InstrumentedProvider{TranscriptionProvider: p, metrics: metrics}
}

// TranscribeAudio delegates to the wrapped provider.
func (ip *InstrumentedProvider) TranscribeAudio(ctx context.Context, request *TranscriptionRequest) (*TranscriptionResponse, error) {
	name := ip.GetProviderInfo().Name
	start := time.Now()

	resp, err := ip.TranscriptionProvider.TranscribeAudio(ctx, request)
	if err != nil {
		ip.metrics.RecordFailure(name, ErrorCode(err))
		return nil, err
	}

	ip.metrics.RecordSuccess(name, time.Since(start), request.Audio.Size())
	return resp, nil
}
