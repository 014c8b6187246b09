package raindrop

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

const defaultBaseURL = "https://api.raindrop.io/rest/v1"

type Config struct {
	Token     string
	UserAgent string
	// BaseURL overrides the API root, for tests.
	BaseURL string
}

// Client talks to the Raindrop REST API.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	httpc     *http.Client
	logger    *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		httpc:     &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

type collectionItem struct {
	ID    int64  `json:"_id"`
	Title string `json:"title"`
}

type raindropItem struct {
	ID      int64    `json:"_id"`
	Title   string   `json:"title"`
	Link    string   `json:"link"`
	Excerpt string   `json:"excerpt"`
	Note    string   `json:"note"`
	Cover   string   `json:"cover"`
	Type    string   `json:"type"`
	Tags    []string `json:"tags"`
}

type itemsResponse[T any] struct {
	Items []T `json:"items"`
}

// Collections returns root and nested collections merged into one list.
func (c *Client) Collections(ctx context.Context) ([]entity.Collection, error) {
	var out []entity.Collection
	seen := map[int64]struct{}{}

	for _, path := range []string{"/collections", "/collections/childrens"} {
		var resp itemsResponse[collectionItem]
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("fetch collections %s: %w", path, err)
		}
		for _, item := range resp.Items {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, entity.Collection{ID: item.ID, Title: item.Title})
		}
	}

	return out, nil
}

// Bookmarks fetches the newest bookmarks in a collection, unfiltered.
func (c *Client) Bookmarks(ctx context.Context, collectionID int64, perPage int) ([]entity.Bookmark, error) {
	path := fmt.Sprintf("/raindrops/%d?page=0&perpage=%d&sort=-created", collectionID, perPage)

	var resp itemsResponse[raindropItem]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch raindrops for collection %d: %w", collectionID, err)
	}

	out := make([]entity.Bookmark, 0, len(resp.Items))
	for _, item := range resp.Items {
		out = append(out, entity.Bookmark{
			ID:           item.ID,
			CollectionID: collectionID,
			Title:        item.Title,
			Link:         item.Link,
			Excerpt:      item.Excerpt,
			Note:         item.Note,
			Cover:        item.Cover,
			Type:         item.Type,
			Tags:         item.Tags,
		})
	}
	return out, nil
}

// VideoCandidates fetches the newest bookmarks in a collection and keeps
// the ones that look like videos.
func (c *Client) VideoCandidates(ctx context.Context, collectionID int64, perPage int) ([]entity.Bookmark, error) {
	all, err := c.Bookmarks(ctx, collectionID, perPage)
	if err != nil {
		return nil, err
	}

	var candidates []entity.Bookmark
	for _, b := range all {
		if b.IsVideoCandidate() {
			candidates = append(candidates, b)
		}
	}
	return candidates, nil
}

// UpdateTags replaces the bookmark's tags. The API overwrites the field,
// so callers must pass the full desired set.
func (c *Client) UpdateTags(ctx context.Context, bookmarkID int64, tags []string) error {
	payload := map[string]any{"tags": tags}
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/raindrop/%d", bookmarkID), payload, nil); err != nil {
		return fmt.Errorf("update bookmark %d tags: %w", bookmarkID, err)
	}
	return nil
}

// Move files the bookmark into another collection.
func (c *Client) Move(ctx context.Context, bookmarkID, collectionID int64) error {
	payload := map[string]any{"collection": map[string]any{"$id": collectionID}}
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/raindrop/%d", bookmarkID), payload, nil); err != nil {
		return fmt.Errorf("move bookmark %d: %w", bookmarkID, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("raindrop api %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
