package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 食譜生成結果
const (
	OutcomeSuccess         = "success"
	OutcomeConfiguration   = "configuration_error"
	OutcomeProvider        = "provider_error"
	OutcomeMalformedOutput = "malformed_output"
	OutcomeInvalidRequest  = "invalid_request"
)

var (
	// HTTPRequestsTotal HTTP 請求數
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP 請求耗時
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_api_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight 處理中的請求數
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_api_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	// RecipeGenerations 食譜生成結果計數
	RecipeGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_api_generations_total",
			Help: "Total number of recipe generations by outcome",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderLatency 補全供應商呼叫耗時
	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_api_provider_duration_seconds",
			Help:    "Completion provider call latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"provider"},
	)
)
