package client

import "strings"

// ParseLinkHeader extracts the rel="next" URL from an RFC 5988 Link header.
// The header is a comma-separated list of `<url>; rel="value"` segments; the
// first segment carrying rel="next" (single or double quotes) wins. Returns
// the empty string for absent, malformed, or next-less headers.
func ParseLinkHeader(header string) string {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="next"`) && !strings.Contains(part, `rel='next'`) {
			continue
		}
		start := strings.Index(part, "<")
		if start < 0 {
			continue
		}
		end := strings.Index(part[start+1:], ">")
		if end < 0 {
			continue
		}
		return strings.TrimSpace(part[start+1 : start+1+end])
	}
	return ""
}
