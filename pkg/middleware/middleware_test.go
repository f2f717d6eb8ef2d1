package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/rental.v1.ContractService/GetContract"}

func TestContextInterceptor(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		"x-user-id", "u-1",
		"x-request-id", "req-9",
		"accept-language", "es",
	))

	var seen context.Context
	_, err := ContextInterceptor()(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = ctx
		return nil, nil
	})
	require.NoError(t, err)

	assert.Equal(t, "u-1", seen.Value(UserIDKey))
	assert.Equal(t, "req-9", seen.Value(RequestIDKey))
	assert.Equal(t, "es", seen.Value(LanguageKey))
}

func TestContextInterceptor_GeneratesRequestID(t *testing.T) {
	var seen context.Context
	_, err := ContextInterceptor()(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = ctx
		return nil, nil
	})
	require.NoError(t, err)

	id, _ := seen.Value(RequestIDKey).(string)
	assert.NotEmpty(t, id)
	assert.Nil(t, seen.Value(UserIDKey))
}

func TestRateLimitInterceptor(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(1), 1)
	interceptor := RateLimitInterceptor(limiter)
	ok := func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil }

	out, err := interceptor(context.Background(), nil, info, ok)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, err = interceptor(context.Background(), nil, info, ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}
