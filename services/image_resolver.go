package services

import (
	"net/url"
	"strings"
)

// DefaultImageBaseURL is the bucket product images are served from.
const DefaultImageBaseURL = "https://storage.cloud.google.com/giganteimages"

// ImageResolver turns a product's image reference into a displayable URL.
type ImageResolver struct {
	baseURL string
}

func NewImageResolver(baseURL string) ImageResolver {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultImageBaseURL
	}
	return ImageResolver{baseURL: baseURL}
}

// Resolve returns "" for an empty ref, the ref itself when it is already an
// absolute http(s) URL, and otherwise the escaped ref under the base URL.
// The whole ref is one path segment, so "/" is escaped too.
func (r ImageResolver) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	base := r.baseURL
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + "/" + url.PathEscape(ref)
}
