package news

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient points a client at a test server and records sleeps instead
// of performing them.
func newTestClient(serverURL string) (*Client, *[]time.Duration) {
	c := NewClient(Config{APIKey: "test-key", BaseURL: serverURL})
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, &slept
}

func articlesJSON(titles ...string) string {
	body := `{"status":"ok","articles":[`
	for i, title := range titles {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"title":%q,"url":"https://example.com/%d"}`, title, i)
	}
	return body + `]}`
}

func TestSearchRetriesOnRateLimit(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, articlesJSON("Quantum chip unveiled"))
	}))
	defer ts.Close()

	c, slept := newTestClient(ts.URL)
	articles := c.Search("Quantum computing breakthrough")

	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if len(articles) != 1 || articles[0].Title != "Quantum chip unveiled" {
		t.Fatalf("expected 1 article back, got %+v", articles)
	}
	want := []time.Duration{250 * time.Millisecond, 500 * time.Millisecond}
	if len(*slept) != 2 || (*slept)[0] != want[0] || (*slept)[1] != want[1] {
		t.Errorf("expected backoff %v, got %v", want, *slept)
	}
}

func TestSearchRateLimitExhaustion(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c, slept := newTestClient(ts.URL)
	if articles := c.Search("anything goes here"); articles != nil {
		t.Errorf("expected nil on exhaustion, got %+v", articles)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	// No sleep after the final attempt.
	if len(*slept) != 2 {
		t.Errorf("expected 2 backoff sleeps, got %d", len(*slept))
	}
}

func TestSearchHardErrorDoesNotRetry(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL)
	if articles := c.Search("server trouble today"); articles != nil {
		t.Errorf("expected nil on hard error, got %+v", articles)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestSearchEmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok","articles":[]}`)
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL)
	if articles := c.Search("nothing matches this"); articles != nil {
		t.Errorf("expected nil for empty result, got %+v", articles)
	}
}

func TestSearchSendsSanitizedQuery(t *testing.T) {
	var gotQuery, gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("apiKey")
		fmt.Fprint(w, articlesJSON("A"))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL)
	c.Search("The Future of Quantum Computing in Modern Cryptography!")

	if gotQuery != "Future Quantum Computing" {
		t.Errorf("expected sanitized query, got %q", gotQuery)
	}
	if gotKey != "test-key" {
		t.Errorf("expected api key param, got %q", gotKey)
	}
}

func TestSearchUnconfigured(t *testing.T) {
	c := NewClient(Config{})
	if c.IsConfigured() {
		t.Error("expected unconfigured client")
	}
	if articles := c.Search("any title"); articles != nil {
		t.Errorf("expected nil without api key, got %+v", articles)
	}
}

func TestSearchDefaultParams(t *testing.T) {
	var got map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{
			"language": r.URL.Query().Get("language"),
			"pageSize": r.URL.Query().Get("pageSize"),
			"sortBy":   r.URL.Query().Get("sortBy"),
		}
		fmt.Fprint(w, articlesJSON("A"))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL)
	c.Search("quantum computing news")

	if got["language"] != "en" || got["pageSize"] != "50" || got["sortBy"] != "relevancy" {
		t.Errorf("unexpected default params: %v", got)
	}
}
