// Package device derives a human-readable device name from the User-Agent so
// sessions can be listed as "Chrome on Windows" rather than raw header values.
package device

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyDeviceName struct{}

// Middleware parses the User-Agent once per request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithDeviceName(r.Context(), DisplayName(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DisplayName renders "<browser> on <os>" for a User-Agent string.
func DisplayName(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "Unknown device"
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OSInfo().Name
	if ua.Bot() {
		return "Bot"
	}
	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	case os != "":
		return os
	default:
		return "Unknown device"
	}
}

// DeviceName retrieves the device display name from the context.
func DeviceName(ctx context.Context) string {
	if name, ok := ctx.Value(contextKeyDeviceName{}).(string); ok {
		return name
	}
	return ""
}

// WithDeviceName injects a device display name into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithDeviceName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextKeyDeviceName{}, name)
}
