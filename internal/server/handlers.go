package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saulnewbury/youtube-transcript-microservice/internal/captions"
	"github.com/saulnewbury/youtube-transcript-microservice/internal/engine"
	"github.com/saulnewbury/youtube-transcript-microservice/internal/transcript"
)

const serviceName = "youtube-transcript-microservice"

// maxTitleRunes caps video titles in responses; scraped <title> fallbacks can
// carry arbitrary page text.
const maxTitleRunes = 200

// maxErrorDetail caps upstream error text relayed to clients, which can
// embed response body snippets.
const maxErrorDetail = 300

type transcriptRequest struct {
	URL                string   `json:"url" binding:"required"`
	IncludeTimestamps  *bool    `json:"include_timestamps"`
	TimestampFormat    string   `json:"timestamp_format"`
	GroupingStrategy   string   `json:"grouping_strategy"`
	MinInterval        *float64 `json:"min_interval"`
	PreferredLanguages []string `json:"preferred_languages"`
	IncludeMetadata    *bool    `json:"include_metadata"`
}

type transcriptResponse struct {
	Text             string               `json:"text"`
	Segments         []transcript.Segment `json:"segments,omitempty"`
	Status           string               `json:"status"`
	VideoID          string               `json:"video_id"`
	VideoTitle       string               `json:"video_title,omitempty"`
	LanguageCode     string               `json:"language_code,omitempty"`
	IsGenerated      bool                 `json:"is_generated"`
	Service          string               `json:"service"`
	TotalSegments    int                  `json:"total_segments"`
	TotalDuration    float64              `json:"total_duration"`
	IsShorts         bool                 `json:"is_shorts"`
	TranscriptSource string               `json:"transcript_source,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"status":  "running",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.String(http.StatusOK, engine.FormatMetrics())
}

// handleTranscript is the main POST endpoint: a video URL in, a grouped
// transcript out.
func (s *Server) handleTranscript(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	videoID, isShorts, err := captions.ExtractVideoID(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	opts := optionsFromRequest(&req)
	s.serveTranscript(c, videoID, isShorts, opts, &req)
}

// handleTranscriptByID serves GET /transcript/:video_id with options as
// query parameters.
func (s *Server) handleTranscriptByID(c *gin.Context) {
	videoID := c.Param("video_id")
	if !captions.ValidVideoID(videoID) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid video id"})
		return
	}

	req := transcriptRequest{
		TimestampFormat:  c.Query("timestamp_format"),
		GroupingStrategy: c.Query("grouping_strategy"),
	}
	if v := c.Query("include_timestamps"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid include_timestamps"})
			return
		}
		req.IncludeTimestamps = &b
	}
	if v := c.Query("min_interval"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid min_interval"})
			return
		}
		req.MinInterval = &f
	}
	if v := c.Query("preferred_languages"); v != "" {
		req.PreferredLanguages = strings.Split(v, ",")
	}
	if v := c.Query("include_metadata"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid include_metadata"})
			return
		}
		req.IncludeMetadata = &b
	}

	opts := optionsFromRequest(&req)
	s.serveTranscript(c, videoID, false, opts, &req)
}

func optionsFromRequest(req *transcriptRequest) transcript.Options {
	opts := transcript.Options{
		IncludeTimestamps: true,
		TimestampFormat:   transcript.FormatMinutes,
		GroupingStrategy:  transcript.StrategySmart,
		MinInterval:       10,
	}
	if req.IncludeTimestamps != nil {
		opts.IncludeTimestamps = *req.IncludeTimestamps
	}
	if req.TimestampFormat != "" {
		opts.TimestampFormat = req.TimestampFormat
	}
	if req.GroupingStrategy != "" {
		opts.GroupingStrategy = req.GroupingStrategy
	}
	// An explicit zero is meaningful: sentence grouping with min_interval 0
	// timestamps every sentence end.
	if req.MinInterval != nil {
		opts.MinInterval = *req.MinInterval
	}
	return opts
}

func (s *Server) serveTranscript(c *gin.Context, videoID string, isShorts bool, opts transcript.Options, req *transcriptRequest) {
	ctx := c.Request.Context()
	engine.IncrTranscriptRequests()

	langs := req.PreferredLanguages
	includeMetadata := req.IncludeMetadata == nil || *req.IncludeMetadata

	key := engine.CacheKey(videoID, optionsKey(opts),
		strings.Join(langs, ","), strconv.FormatBool(includeMetadata))
	if cached, ok := engine.CacheLoadJSON[transcriptResponse](ctx, key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	res, err := s.loadCaptions(ctx, videoID, langs)
	if err != nil {
		status, msg := classifyFetchError(err)
		slog.Warn("transcript fetch failed",
			slog.String("video_id", videoID),
			slog.Int("status", status),
			slog.Any("error", err))
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	processed := transcript.Process(res.Cues, opts)
	if processed.Text == "" {
		engine.IncrNotFound()
		c.JSON(http.StatusNotFound, errorResponse{Error: "transcript is empty for video " + videoID})
		return
	}

	resp := transcriptResponse{
		Text:             processed.Text,
		Status:           "success",
		VideoID:          videoID,
		VideoTitle:       engine.TruncateRunes(res.Title, maxTitleRunes, "…"),
		LanguageCode:     res.LanguageCode,
		IsGenerated:      res.IsGenerated,
		Service:          serviceName,
		TotalSegments:    len(processed.Segments),
		TotalDuration:    processed.TotalDuration,
		IsShorts:         isShorts,
		TranscriptSource: res.Source,
	}
	if opts.IncludeTimestamps {
		resp.Segments = processed.Segments
	}
	if !includeMetadata {
		resp.VideoTitle = ""
	}

	engine.CacheStoreJSON(ctx, key, resp)
	c.JSON(http.StatusOK, resp)
}

// loadCaptions consults the on-disk archive before hitting YouTube, and
// archives fresh fetches for next time.
func (s *Server) loadCaptions(ctx context.Context, videoID string, langs []string) (*captions.Result, error) {
	if entry, ok := engine.ArchiveGet(ctx, videoID); ok {
		var cues []transcript.Cue
		if err := json.Unmarshal(entry.CuesJSON, &cues); err == nil && len(cues) > 0 {
			return &captions.Result{
				Cues:          cues,
				LanguageCode:  entry.LanguageCode,
				IsGenerated:   entry.IsGenerated,
				Source:        entry.Source,
				Title:         entry.Title,
				Author:        entry.Author,
				LengthSeconds: entry.LengthSeconds,
			}, nil
		}
		slog.Warn("discarding corrupt archive entry", slog.String("video_id", videoID))
	}

	res, err := captions.Fetch(ctx, videoID, langs)
	if err != nil {
		return nil, err
	}

	if cuesJSON, err := json.Marshal(res.Cues); err == nil {
		if err := engine.ArchivePut(ctx, engine.ArchiveEntry{
			VideoID:       videoID,
			LanguageCode:  res.LanguageCode,
			IsGenerated:   res.IsGenerated,
			Source:        res.Source,
			Title:         res.Title,
			Author:        res.Author,
			LengthSeconds: res.LengthSeconds,
			CuesJSON:      cuesJSON,
		}); err != nil {
			slog.Warn("archive write failed", slog.String("video_id", videoID), slog.Any("error", err))
		}
	}
	return res, nil
}

func classifyFetchError(err error) (int, string) {
	switch {
	case captions.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case captions.IsUnavailable(err):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream fetch timed out"
	default:
		return http.StatusBadGateway, "failed to fetch transcript: " + engine.Truncate(err.Error(), maxErrorDetail)
	}
}

// optionsKey folds processing options into the cache key so different
// renderings of the same video do not collide.
func optionsKey(opts transcript.Options) string {
	return strconv.FormatBool(opts.IncludeTimestamps) + "|" +
		opts.TimestampFormat + "|" +
		opts.GroupingStrategy + "|" +
		strconv.FormatFloat(opts.MinInterval, 'g', -1, 64)
}
