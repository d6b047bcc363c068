// Package fetch enriches collected headlines with full article text
// extracted via readability.
package fetch

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"newsrec/internal/database"
)

// minContentLength is the shortest extraction considered useful.
const minContentLength = 100

// Result holds the results of a content fetch run.
type Result struct {
	Fetched int
	Failed  int
}

// ContentFetcher fetches full headline text via HTTP + readability extraction.
type ContentFetcher struct {
	db     *database.DB
	client *http.Client
}

// NewContentFetcher creates a new content fetcher.
func NewContentFetcher(db *database.DB, timeout time.Duration) *ContentFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &ContentFetcher{
		db: db,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// FetchMissingContent fetches content for headlines that have none yet.
// Domains that return an HTTP error are skipped for the rest of the run.
func (f *ContentFetcher) FetchMissingContent() *Result {
	headlines, err := f.db.GetHeadlinesNeedingFetch()
	if err != nil {
		log.Printf("Error getting headlines needing fetch: %v", err)
		return &Result{}
	}
	if len(headlines) == 0 {
		log.Println("No headlines need content fetching")
		return &Result{}
	}

	result := &Result{}
	failedDomains := make(map[string]struct{})

	for _, h := range headlines {
		domain := hostOf(h.URL)
		if _, failed := failedDomains[domain]; failed {
			f.db.MarkHeadlineFetchAttempted(h.ID)
			result.Failed++
			continue
		}

		content, httpErr := f.extract(h.URL)
		if httpErr != nil {
			f.db.MarkHeadlineFetchAttempted(h.ID)
			result.Failed++
			if domain != "" {
				failedDomains[domain] = struct{}{}
			}
			log.Printf("HTTP error for %s, skipping remaining from %s", h.URL, domain)
			continue
		}

		if content != "" {
			f.db.UpdateHeadlineContent(h.ID, &content)
			result.Fetched++
			log.Printf("Fetched content for: %s", h.Title)
		} else {
			f.db.MarkHeadlineFetchAttempted(h.ID)
			result.Failed++
			log.Printf("No extractable content from: %s", h.URL)
		}
	}

	log.Printf("Content fetch complete: %d fetched, %d failed", result.Fetched, result.Failed)
	return result
}

// extract downloads a page and pulls out the readable article text.
// A nil error with empty content means the page had nothing extractable;
// only HTTP-level failures return an error (used for domain skipping).
func (f *ContentFetcher) extract(pageURL string) (string, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "newsrec/1.0 (news recommender)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil // connection error, not HTTP error
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &httpError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil
	}

	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsed)
	if err != nil {
		return "", nil
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) < minContentLength {
		return "", nil
	}
	return text, nil
}

func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

type httpError struct {
	code int
}

func (e *httpError) Error() string {
	return http.StatusText(e.code)
}
