package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

// DeviceInfo describes the client that submitted a scan, parsed from the
// User-Agent header. Dedicated scanner apps identify themselves here; the
// info is carried into audit events for traceability only.
type DeviceInfo struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
	Raw     string
}

type contextKeyDevice struct{}

// GetDevice retrieves the parsed device info from the context.
func GetDevice(ctx context.Context) DeviceInfo {
	info, ok := ctx.Value(contextKeyDevice{}).(DeviceInfo)
	if !ok {
		return DeviceInfo{}
	}
	return info
}

// Device parses the User-Agent header once per request and stores the result
// in the context.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		info := DeviceInfo{Raw: raw}
		if raw != "" {
			ua := useragent.New(raw)
			name, _ := ua.Browser()
			info.Browser = name
			info.OS = ua.OS()
			info.Mobile = ua.Mobile()
			info.Bot = ua.Bot()
		}
		ctx := context.WithValue(r.Context(), contextKeyDevice{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
