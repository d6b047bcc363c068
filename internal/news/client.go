// Package news provides the NewsAPI search client used to gather candidate
// articles for the recommendation pipeline.
package news

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"newsrec/internal/textproc"
)

const (
	defaultBaseURL  = "https://newsapi.org/v2/everything"
	defaultPageSize = 50
	defaultLanguage = "en"
	defaultSort     = "relevancy"

	searchRetries = 3
	backoffBase   = 250 * time.Millisecond
)

// Config holds the NewsAPI connection settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	PageSize int
	Sort     string
}

// RawArticle is an article record as returned by NewsAPI. Any field may be
// absent; defaults are applied when the record is projected.
type RawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// Client searches NewsAPI for candidate articles.
type Client struct {
	cfg    Config
	client *http.Client
	sleep  func(time.Duration) // swappable for tests
}

// NewClient creates a NewsAPI client. Zero-value config fields fall back to
// the NewsAPI defaults (everything endpoint, en, 50 results by relevancy).
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Sort == "" {
		cfg.Sort = defaultSort
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		sleep:  time.Sleep,
	}
}

// IsConfigured returns whether the API key is available.
func (c *Client) IsConfigured() bool {
	return c.cfg.APIKey != ""
}

// Search fetches candidate articles for a liked-article title. The title is
// sanitized into a compact query first. Rate-limit responses are retried up
// to three attempts with exponential backoff; every other failure degrades to
// an empty result. Search never returns an error.
func (c *Client) Search(likedTitle string) []RawArticle {
	if c.cfg.APIKey == "" {
		log.Println("NewsAPI not configured, skipping search")
		return nil
	}

	query := textproc.SanitizeQuery(likedTitle)
	if query == "" {
		return nil
	}

	params := url.Values{
		"q":        {query},
		"apiKey":   {c.cfg.APIKey},
		"language": {c.cfg.Language},
		"pageSize": {fmt.Sprintf("%d", c.cfg.PageSize)},
		"sortBy":   {c.cfg.Sort},
	}
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	for attempt := 0; attempt < searchRetries; attempt++ {
		articles, retry := c.doSearch(reqURL, query)
		if !retry {
			return articles
		}
		if attempt < searchRetries-1 {
			// 0.25s -> 0.5s -> 1s
			wait := backoffBase << attempt
			log.Printf("NewsAPI rate limit hit (attempt %d/%d), waiting %s", attempt+1, searchRetries, wait)
			c.sleep(wait)
		}
	}

	log.Printf("NewsAPI retries exhausted for query: %s", query)
	return nil
}

// doSearch performs a single request. retry is true only on a 429 response.
func (c *Client) doSearch(reqURL, query string) (articles []RawArticle, retry bool) {
	resp, err := c.client.Get(reqURL)
	if err != nil {
		log.Printf("NewsAPI error for query %q: %v", query, err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("NewsAPI HTTP error %d for query %q", resp.StatusCode, query)
		return nil, false
	}

	var result struct {
		Status   string       `json:"status"`
		Articles []RawArticle `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("NewsAPI decode error for query %q: %v", query, err)
		return nil, false
	}
	if result.Status != "ok" {
		log.Printf("NewsAPI status %q for query %q", result.Status, query)
		return nil, false
	}

	if len(result.Articles) == 0 {
		log.Printf("No articles found for query: %s", query)
		return nil, false
	}
	return result.Articles, false
}
