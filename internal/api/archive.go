package api

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"mjlog/internal/config"
	"mjlog/internal/constants"
)

var (
	ErrInvalidLogID = errors.New("invalid log id")
	ErrLogNotFound  = errors.New("log not found")
)

// Log ids look like 2024010100gm-00a9-0000-1a2b3c4d.
var logIDPattern = regexp.MustCompile(`^[0-9]{10}gm-[0-9a-f]{4}-[0-9]{4,5}-[0-9a-zA-Z]{8}$`)

func ValidLogID(id string) bool {
	return logIDPattern.MatchString(id)
}

// ArchiveClient downloads raw match logs from the public archive.
type ArchiveClient struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
	statsMu sync.RWMutex
	stats   FetchStats
}

type FetchStats struct {
	Requests    int       `json:"requests"`
	Failures    int       `json:"failures"`
	LastStatus  int       `json:"last_status"`
	LastFetchAt time.Time `json:"last_fetch_at"`
}

func NewArchiveClient(cfg *config.Config, logger zerolog.Logger) *ArchiveClient {
	return NewArchiveClientWith(cfg.ArchiveBaseURL, &fasthttp.Client{
		MaxConnsPerHost:     100,
		ReadTimeout:         constants.ArchiveTimeout,
		WriteTimeout:        constants.ArchiveTimeout,
		MaxIdleConnDuration: 1 * time.Minute,
		MaxResponseBodySize: constants.MaxLogBytes,
	}, logger)
}

func NewArchiveClientWith(baseURL string, client *fasthttp.Client, logger zerolog.Logger) *ArchiveClient {
	return &ArchiveClient{
		baseURL: baseURL,
		client:  client,
		logger:  logger.With().Str("component", "archive").Logger(),
	}
}

func (c *ArchiveClient) Stats() FetchStats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

func (c *ArchiveClient) record(status int, failed bool) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	c.stats.Requests++
	if failed {
		c.stats.Failures++
	}
	c.stats.LastStatus = status
	c.stats.LastFetchAt = time.Now()
}

// GetLog returns the XML body of one match log.
func (c *ArchiveClient) GetLog(ctx context.Context, logID string) ([]byte, error) {
	if !ValidLogID(logID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogID, logID)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "?" + logID)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, constants.ArchiveTimeout)
	}
	if err != nil {
		c.record(0, true)
		c.logger.Error().Err(err).Str("log_id", logID).Msg("archive request failed")
		return nil, fmt.Errorf("fetch %s: %w", logID, err)
	}

	status := resp.StatusCode()
	c.logger.Debug().
		Str("log_id", logID).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("archive response")

	switch status {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		c.record(status, true)
		return nil, fmt.Errorf("%w: %s", ErrLogNotFound, logID)
	default:
		c.record(status, true)
		return nil, fmt.Errorf("archive error: %d", status)
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		c.record(status, true)
		return nil, fmt.Errorf("decompress %s: %w", logID, err)
	}
	c.record(status, false)

	// resp is released on return
	return append([]byte(nil), body...), nil
}
