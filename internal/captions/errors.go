package captions

import "errors"

// Error kinds surfaced to the HTTP layer. Anything not matching one of these
// is treated as transient (upstream hiccup, network failure) and is safe to
// retry from the client side.
var (
	// ErrNoCaptions means the video exists but has no usable caption tracks.
	ErrNoCaptions = errors.New("no captions available for this video")

	// ErrVideoUnavailable means the video is private, deleted, or blocked.
	ErrVideoUnavailable = errors.New("video is unavailable")

	// ErrBadVideoURL means no video ID could be extracted from the URL.
	ErrBadVideoURL = errors.New("could not extract video ID from URL")
)

// IsNotFound reports whether err is a definitive "nothing to fetch" failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoCaptions)
}

// IsUnavailable reports whether err means the video itself cannot be accessed.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrVideoUnavailable)
}

// isDefinitive reports whether err will not change on a different fetch path.
func isDefinitive(err error) bool {
	return IsNotFound(err) || IsUnavailable(err)
}
