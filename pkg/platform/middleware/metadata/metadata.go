package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"eventcare/pkg/requestcontext"
)

// maxUserAgentLength truncates oversized User-Agent headers before they are
// copied into audit entries.
const maxUserAgentLength = 512

// ClientMetadata extracts client IP address and User-Agent from the request
// and adds them to the context. Audit entries read them as origin address and
// origin agent. This middleware should be applied early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		userAgent := r.Header.Get("User-Agent")
		if len(userAgent) > maxUserAgentLength {
			userAgent = userAgent[:maxUserAgentLength]
		}

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, userAgent)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" or "[::1]:port"
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}

	return "unknown"
}

// Agent is a parsed, display-friendly view of a User-Agent string.
type Agent struct {
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version,omitempty"`
	OS             string `json:"os"`
	Mobile         bool   `json:"mobile"`
	Bot            bool   `json:"bot"`
}

// String renders the agent as "Browser on OS".
func (a Agent) String() string {
	return strings.TrimSpace(a.Browser + " on " + a.OS)
}

// DescribeAgent parses a raw User-Agent. Empty input yields an "Unknown" agent.
func DescribeAgent(raw string) Agent {
	if strings.TrimSpace(raw) == "" {
		return Agent{Browser: "Unknown", OS: "Unknown"}
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	agent := Agent{
		Browser:        name,
		BrowserVersion: version,
		OS:             ua.OS(),
		Mobile:         ua.Mobile(),
		Bot:            ua.Bot(),
	}
	if agent.Browser == "" {
		agent.Browser = "Unknown"
	}
	if agent.OS == "" {
		agent.OS = ua.Platform()
	}
	if agent.OS == "" {
		agent.OS = "Unknown"
	}
	return agent
}
