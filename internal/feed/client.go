package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Client fetches and decodes the upstream GTFS-RT trip updates feed.
type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a feed client. The timeout bounds the whole
// request/response cycle; the feed has no auth and takes no parameters.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch retrieves one feed snapshot. Non-2xx responses become *UpstreamError,
// malformed payloads *DecodeError; neither is retried here.
func (c *Client) Fetch(ctx context.Context) (*gtfs.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	msg := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, &DecodeError{Err: err}
	}

	c.logger.Debug("feed fetched", "entities", len(msg.GetEntity()), "bytes", len(body))
	return msg, nil
}
