package analytics

import "strings"

// Route tables for the storefront. The ignore list is checked first and
// wins on overlap, so the admin surface and the analytics endpoints are
// never counted even though they live under the API prefix.
var (
	ignoredPrefixes = []string{
		"/api/v1/admin",
		"/api/v1/analytics",
		"/metrics",
		"/healthz",
		"/favicon.ico",
		"/robots.txt",
		"/static",
		"/assets",
		"/uploads",
		"/.well-known",
	}

	ignoredSuffixes = []string{
		".css", ".js", ".map", ".ico", ".png", ".jpg", ".jpeg",
		".gif", ".svg", ".webp", ".woff", ".woff2", ".ttf",
	}

	// API routes that serve the public storefront.
	publicAPIPrefixes = []string{
		"/api/v1/products",
		"/api/v1/categories",
		"/api/v1/payment-methods",
	}

	// Storefront pages.
	publicPagePrefixes = []string{
		"/product",
		"/category",
		"/cart",
		"/checkout",
		"/search",
		"/about",
		"/contact",
		"/order-status",
	}

	apiPrefix = "/api/"
)

// Classify decides how a request path is counted. It returns
// record=false for paths that must not be counted at all (assets, health
// checks, the admin surface, the analytics endpoints themselves, and
// anything that matches neither a storefront page nor the API prefix).
// For recorded paths, public reports whether the request counts as a
// page view; non-public API calls are still recorded but never
// contribute to the page ranking or the page-view totals.
func Classify(path string) (record bool, public bool) {
	if path == "" {
		return false, false
	}

	for _, prefix := range ignoredPrefixes {
		if hasPathPrefix(path, prefix) {
			return false, false
		}
	}
	for _, suffix := range ignoredSuffixes {
		if strings.HasSuffix(path, suffix) {
			return false, false
		}
	}

	for _, prefix := range publicAPIPrefixes {
		if hasPathPrefix(path, prefix) {
			return true, true
		}
	}

	if strings.HasPrefix(path, apiPrefix) {
		return true, false
	}

	if path == "/" {
		return true, true
	}
	for _, prefix := range publicPagePrefixes {
		if hasPathPrefix(path, prefix) {
			return true, true
		}
	}

	return false, false
}

// hasPathPrefix matches prefix on segment boundaries, so "/product"
// matches "/product/42" but not "/products".
func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
