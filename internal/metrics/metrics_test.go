package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { Register(reg) })
}

func TestUnaryServerInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/rental.v1.SaleService/CreateSale"}
	interceptor := UnaryServerInterceptor()

	before := testutil.ToFloat64(RPCRequests.WithLabelValues(info.FullMethod, codes.NotFound.String()))

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "sale not found")
	})
	assert.Error(t, err)

	after := testutil.ToFloat64(RPCRequests.WithLabelValues(info.FullMethod, codes.NotFound.String()))
	assert.Equal(t, before+1, after)
}
