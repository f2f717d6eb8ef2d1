package middleware

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type ctxKey string

const (
	UserIDKey    ctxKey = "user_id"
	RequestIDKey ctxKey = "request_id"
	LanguageKey  ctxKey = "language"
)

// ContextInterceptor copies caller identity from incoming metadata into the
// request context and assigns a request id when the caller did not send one.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, _ := metadata.FromIncomingContext(ctx)

		if v := first(md, "x-user-id"); v != "" {
			ctx = context.WithValue(ctx, UserIDKey, v)
		}
		if v := first(md, "accept-language"); v != "" {
			ctx = context.WithValue(ctx, LanguageKey, v)
		}

		requestID := first(md, "x-request-id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, RequestIDKey, requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs("x-request-id", requestID))

		return handler(ctx, req)
	}
}

func first(md metadata.MD, key string) string {
	if md == nil {
		return ""
	}
	if vals := md.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
