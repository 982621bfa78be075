// ════════════════════════════════════════════════════════════
// Path: utils/user_agent.go
// Coarse device classification of storefront visitors
// ════════════════════════════════════════════════════════════

package utils

import "strings"

// DeviceInfo is the coarse device classification of a User-Agent.
type DeviceInfo struct {
	Type    string // mobile, tablet or desktop
	Browser string
	OS      string
}

// ParseUserAgent classifies a User-Agent header.
func ParseUserAgent(userAgent string) DeviceInfo {
	ua := strings.ToLower(userAgent)
	return DeviceInfo{
		Type:    parseDeviceType(ua),
		Browser: parseBrowser(ua),
		OS:      parseOS(ua),
	}
}

// parseDeviceType determines if the request is from mobile, tablet, or desktop
func parseDeviceType(ua string) string {
	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
		return "mobile"
	}
	return "desktop"
}

func parseBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "chrome") || strings.Contains(ua, "crios"):
		return "Chrome"
	case strings.Contains(ua, "firefox") || strings.Contains(ua, "fxios"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	default:
		return "Other"
	}
}

// parseOS checks mobile platforms first: their User-Agents also mention
// "linux" (Android) and "mac os" (iOS).
func parseOS(ua string) string {
	switch {
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return "Other"
	}
}
