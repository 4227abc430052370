package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FallbackImageURL is served when no key is configured or the search fails.
const FallbackImageURL = "https://images.unsplash.com/photo-1526045612212-70caf35c14df?fit=crop&w=1200&h=675&q=80"

// Client searches Unsplash for a single hero/section image.
type Client struct {
	BaseURL   string
	AccessKey string
	HTTP      *http.Client
}

func NewClient(accessKey string) *Client {
	return &Client{
		BaseURL:   "https://api.unsplash.com",
		AccessKey: accessKey,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Raw string `json:"raw"`
		} `json:"urls"`
	} `json:"results"`
}

// FetchImage returns the first matching image URL, cropped for a hero slot.
// Failures degrade to the fallback image rather than erroring; a missing
// stock photo never blocks a site.
func (c *Client) FetchImage(ctx context.Context, query string) string {
	if c.AccessKey == "" || query == "" {
		return FallbackImageURL
	}

	u := fmt.Sprintf("%s/search/photos?query=%s&per_page=1", c.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return FallbackImageURL
	}
	req.Header.Set("Authorization", "Client-ID "+c.AccessKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return FallbackImageURL
	}
	defer resp.Body.Close()

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Results) == 0 || out.Results[0].URLs.Raw == "" {
		return FallbackImageURL
	}

	return out.Results[0].URLs.Raw + "&fit=crop&w=1200&h=675&q=80"
}
