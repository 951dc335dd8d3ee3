package parser

import "strings"

// ParseUserAgent extracts coarse OS and browser names for usage-log rows.
// Substring matching is intentionally crude; the verbatim user agent is
// stored alongside the parsed values.
func ParseUserAgent(ua string) (os, browser string) {
	uaLower := strings.ToLower(ua)

	switch {
	case strings.Contains(uaLower, "windows"):
		os = "Windows"
	case strings.Contains(uaLower, "android"):
		os = "Android"
	// iPhone agents also claim "like Mac OS X", so check them first.
	case strings.Contains(uaLower, "iphone"), strings.Contains(uaLower, "ipad"):
		os = "iOS"
	case strings.Contains(uaLower, "mac os"):
		os = "macOS"
	case strings.Contains(uaLower, "linux"):
		os = "Linux"
	default:
		os = "Unknown"
	}

	switch {
	case strings.Contains(uaLower, "edg"):
		browser = "Edge"
	case strings.Contains(uaLower, "chrome"):
		browser = "Chrome"
	case strings.Contains(uaLower, "firefox"):
		browser = "Firefox"
	case strings.Contains(uaLower, "safari"):
		browser = "Safari"
	case strings.Contains(uaLower, "curl"), strings.Contains(uaLower, "wget"),
		strings.Contains(uaLower, "go-http-client"), strings.Contains(uaLower, "python"):
		browser = "CLI"
	default:
		browser = "Unknown"
	}

	return os, browser
}
