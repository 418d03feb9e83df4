package activity

import "regexp"

// PlatformYouTube is the only recognized video platform.
const PlatformYouTube = "youtube"

// VideoRef describes a recognized embeddable video link.
type VideoRef struct {
	Platform string `json:"platform"`
	VideoID  string `json:"video_id"`
	EmbedURL string `json:"embed_url"`
}

// videoPatterns are checked in order; the first match wins.
// The capture is the video id, stopping at the next URL delimiter.
var videoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&]+)`),
	regexp.MustCompile(`youtu\.be/([^?]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^?]+)`),
	regexp.MustCompile(`m\.youtube\.com/watch\?v=([^&]+)`),
}

// ClassifyVideoURL reports whether url points at a recognized video platform.
// It is a pure function: same input, same output; any non-matching string,
// including empty or malformed input, yields no match.
func ClassifyVideoURL(url string) (VideoRef, bool) {
	for _, pattern := range videoPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return VideoRef{
				Platform: PlatformYouTube,
				VideoID:  m[1],
				EmbedURL: "https://www.youtube.com/embed/" + m[1],
			}, true
		}
	}
	return VideoRef{}, false
}
