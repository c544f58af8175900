package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// RPCMetrics records per-procedure call counts and latencies.
type RPCMetrics struct {
	duration *prometheus.HistogramVec
	calls    *prometheus.CounterVec
}

// NewRPCMetrics registers the RPC metrics on reg. A nil registerer yields
// a no-op recorder.
func NewRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	if reg == nil {
		return &RPCMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sharedshop_rpc_duration_seconds",
		Help:    "Duration of RPC calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sharedshop_rpc_calls_total",
		Help: "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})
	reg.MustRegister(duration, calls)
	return &RPCMetrics{
		duration: duration,
		calls:    calls,
	}
}

// Observe records one finished call.
func (m *RPCMetrics) Observe(procedure string, err error, elapsed time.Duration) {
	if m == nil || m.calls == nil {
		return
	}
	code := "ok"
	if err != nil {
		code = connect.CodeOf(err).String()
	}
	m.duration.WithLabelValues(procedure).Observe(elapsed.Seconds())
	m.calls.WithLabelValues(procedure, code).Inc()
}

// Interceptor returns a Connect interceptor feeding m.
func (m *RPCMetrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			m.Observe(req.Spec().Procedure, err, time.Since(start))
			return resp, err
		}
	}
}
