package captions

import (
	"fmt"
	"regexp"
)

// YouTube video IDs are exactly 11 characters of this alphabet.
var (
	shortsIDRE = regexp.MustCompile(`(?:youtube\.com|youtu\.be)/shorts/([a-zA-Z0-9_-]{11})`)

	videoIDREs = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/(?:embed|v|live)/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/\S*[?&]v=([a-zA-Z0-9_-]{11})`),
	}

	bareIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format and
// reports whether the URL is a Shorts link.
func ExtractVideoID(rawURL string) (id string, isShorts bool, err error) {
	if m := shortsIDRE.FindStringSubmatch(rawURL); len(m) >= 2 {
		return m[1], true, nil
	}
	for _, re := range videoIDREs {
		if m := re.FindStringSubmatch(rawURL); len(m) >= 2 {
			return m[1], false, nil
		}
	}
	return "", false, fmt.Errorf("%w: %q", ErrBadVideoURL, rawURL)
}

// ValidVideoID reports whether s is a well-formed bare video ID.
func ValidVideoID(s string) bool {
	return bareIDRE.MatchString(s)
}
