package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	RPCRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "grpc_requests_total",
			Help:      "gRPC requests by method and status code.",
		},
		[]string{"method", "code"},
	)

	RPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rental",
			Name:      "grpc_request_duration_seconds",
			Help:      "gRPC request latency by method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	ContractTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "contract_transitions_total",
			Help:      "Contract status transitions.",
		},
		[]string{"from", "to"},
	)

	StockMovements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "stock_movements_total",
			Help:      "Stock movements applied by movement type.",
		},
		[]string{"type"},
	)

	ExpiredContracts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "contracts_expired_total",
			Help:      "Contracts moved to expired by the expiry worker.",
		},
	)
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(RPCRequests, RPCDuration, ContractTransitions, StockMovements, ExpiredContracts)
}

func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		RPCDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		RPCRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		return resp, err
	}
}
