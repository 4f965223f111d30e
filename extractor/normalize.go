package extractor

import "strings"

// NormalizeChannelURL turns a free-form channel reference (full URL,
// @handle, or bare channel ID) into a canonical channel-videos URL.
func NormalizeChannelURL(ref string) string {
	if !strings.HasPrefix(ref, "http") {
		if strings.HasPrefix(ref, "@") {
			return "https://www.youtube.com/" + ref + "/videos"
		}
		return "https://www.youtube.com/channel/" + ref + "/videos"
	}
	if !strings.Contains(ref, "/videos") {
		return strings.TrimRight(ref, "/") + "/videos"
	}
	return ref
}
