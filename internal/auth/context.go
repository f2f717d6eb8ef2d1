package auth

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/pkg/middleware"
	"google.golang.org/grpc/metadata"
)

const SystemUser = "system"

// GetUserID returns the caller id set by the context interceptor, falling back
// to raw metadata for calls that bypass it.
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.UserIDKey).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-user-id"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

// GetLanguage returns the caller's accept-language, "" if unknown.
func GetLanguage(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.LanguageKey).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("accept-language"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
