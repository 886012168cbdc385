package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/saulnewbury/youtube-transcript-microservice/internal/engine"
	"github.com/saulnewbury/youtube-transcript-microservice/internal/transcript"
)

// Result is one successful caption fetch: normalized cues plus the track and
// video metadata the API layer reports alongside the transcript.
type Result struct {
	Cues          []transcript.Cue
	LanguageCode  string
	IsGenerated   bool
	Source        string // "page_scrape" or "player_api"
	Title         string
	Author        string
	LengthSeconds int
}

const (
	SourcePageScrape = "page_scrape"
	SourcePlayerAPI  = "player_api"
)

// ytInitialPlayerResponseMarker marks the start of the player response JSON
// in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// Fetch fetches caption cues for a YouTube video.
// Primary:  scrape watch page ytInitialPlayerResponse → caption track (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks
//
// langs is the caption language preference order; pass nil for the
// configured default.
func Fetch(ctx context.Context, videoID string, langs []string) (*Result, error) {
	if len(langs) == 0 {
		langs = engine.Cfg.PreferredLanguages
	}
	if t := engine.Cfg.FetchTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	if err := engine.WaitUpstream(ctx); err != nil {
		return nil, err
	}

	res, err := fetchViaPageScrape(ctx, videoID, langs)
	if err == nil {
		return res, nil
	}
	if isDefinitive(err) {
		engine.IncrNotFound()
		return nil, err
	}
	slog.Warn("captions: page scrape failed, trying player API",
		slog.String("id", videoID), slog.Any("err", err))

	res, err = fetchViaPlayerAPI(ctx, videoID, langs)
	if err != nil {
		if isDefinitive(err) {
			engine.IncrNotFound()
		} else {
			engine.IncrFetchErrors()
		}
		return nil, err
	}
	return res, nil
}

// fetchViaPageScrape scrapes the YouTube watch page HTML and extracts caption
// tracks plus video metadata from ytInitialPlayerResponse.
func fetchViaPageScrape(ctx context.Context, videoID string, langs []string) (*Result, error) {
	engine.IncrPageScrape()

	body, err := engine.FetchPage(ctx, ytWatchURL+videoID, watchPageMaxBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, fmt.Errorf("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, fmt.Errorf("failed to extract ytInitialPlayerResponse JSON")
	}

	var pr playerResponse
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}

	res, err := resultFromPlayerResponse(ctx, &pr, langs, SourcePageScrape)
	if err != nil {
		return nil, err
	}
	if res.Title == "" {
		// Some watch page variants ship a player response without
		// videoDetails; the <title> tag still has the name.
		res.Title = titleFromHTML(body)
	}
	return res, nil
}

// fetchViaPlayerAPI uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func fetchViaPlayerAPI(ctx context.Context, videoID string, langs []string) (*Result, error) {
	engine.IncrPlayerAPI()

	pr, err := postPlayer(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return resultFromPlayerResponse(ctx, pr, langs, SourcePlayerAPI)
}

// resultFromPlayerResponse selects a caption track from a player response,
// fetches its cues, and assembles the Result.
func resultFromPlayerResponse(ctx context.Context, pr *playerResponse, langs []string, source string) (*Result, error) {
	if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Status != "" && pr.PlayabilityStatus.Status != "OK" {
		reason := pr.PlayabilityStatus.Reason
		if reason == "" {
			reason = pr.PlayabilityStatus.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, reason)
	}
	if pr.Captions == nil {
		return nil, ErrNoCaptions
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}

	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return nil, fmt.Errorf("%w: all caption tracks require PoToken", ErrNoCaptions)
	}

	cues, err := fetchTrack(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, ErrNoCaptions
	}

	res := &Result{
		Cues:         cues,
		LanguageCode: track.LanguageCode,
		IsGenerated:  track.Kind == "asr",
		Source:       source,
	}
	if vd := pr.VideoDetails; vd != nil {
		res.Title = vd.Title
		res.Author = vd.Author
		res.LengthSeconds, _ = strconv.Atoi(vd.LengthSeconds)
	}
	return res, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language
// preferences. Skips tracks that require PoToken — those only work in a
// browser.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return tracks[0], false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// titleFromHTML extracts the document <title>, stripping the " - YouTube"
// suffix watch pages append.
func titleFromHTML(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = n.FirstChild.Data
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(title), "- YouTube"))
}
