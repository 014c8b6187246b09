package readwise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

const defaultSaveURL = "https://readwise.io/api/v3/save/"

type Config struct {
	Token string
	// SaveURL overrides the endpoint, for tests.
	SaveURL string
}

// Client pushes digests into Readwise Reader. With no token configured
// every save is a logged no-op, matching the pipeline's "publishing is
// optional" stance.
type Client struct {
	saveURL string
	token   string
	httpc   *http.Client
	logger  *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	saveURL := cfg.SaveURL
	if saveURL == "" {
		saveURL = defaultSaveURL
	}
	return &Client{
		saveURL: saveURL,
		token:   cfg.Token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type savePayload struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	HTML       string   `json:"html"`
	Tags       []string `json:"tags"`
	Author     string   `json:"author,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	SavedUsing string   `json:"saved_using"`
}

func (c *Client) SaveDigest(ctx context.Context, digest entity.Digest, tags []string) error {
	if c.token == "" {
		c.logger.Warn("readwise token not set, skipping sync", zap.String("title", digest.Title))
		return nil
	}
	if tags == nil {
		tags = []string{}
	}

	payload := savePayload{
		URL:        digest.SourceURL,
		Title:      digest.Title,
		HTML:       digest.HTML,
		Tags:       tags,
		Author:     digest.Author,
		ImageURL:   digest.CoverURL,
		SavedUsing: "RainDigest",
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal readwise payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.saveURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build readwise request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("readwise save: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("readwise save: status %d: %s", resp.StatusCode, snippet)
	}

	c.logger.Info("saved to readwise reader", zap.String("title", digest.Title))
	return nil
}
