package gateway

import "strings"

const localBaseURL = "http://localhost:8080"

// ResolveBaseURL derives the API gateway base URL from the host serving the
// dashboard. Local hosts fall back to localhost:8080; deployed hosts follow
// the platform naming convention where the web route and the gateway route
// differ only by prefix (web-xxx.apps.example.com -> api-gateway-xxx.apps.example.com).
func ResolveBaseURL(scheme, host string) string {
	if host == "" || strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1") {
		return localBaseURL
	}
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + strings.Replace(host, "web-", "api-gateway-", 1)
}
