package providers

import "regexp"

var (
	amapKeyPattern     = regexp.MustCompile(`([?&]key=)[^&]+`)
	caiyunTokenSegment = regexp.MustCompile(`/v2(?:\.\d+)?/[^/]+/`)
)

// MaskURL hides API credentials in request URLs before they reach logs.
// The AMap key travels as a query parameter, the Caiyun token as a path
// segment right after the API version.
func MaskURL(u string) string {
	masked := amapKeyPattern.ReplaceAllString(u, "${1}***")
	return caiyunTokenSegment.ReplaceAllString(masked, "/v2.6/***/")
}
