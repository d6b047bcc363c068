// Package recommend implements the content-based recommendation pipeline:
// candidate search, projection, TF-IDF similarity ranking, and the per-liked-
// article orchestration loop.
package recommend

import (
	"log"
	"time"

	"newsrec/internal/news"
)

const (
	// DefaultTopK is how many recommendations each liked article contributes.
	DefaultTopK = 5
	// defaultPace is the courtesy delay between consecutive upstream searches.
	defaultPace = 250 * time.Millisecond
)

// Searcher fetches raw candidate articles for a liked-article title.
// *news.Client implements it.
type Searcher interface {
	Search(likedTitle string) []news.RawArticle
}

// Service generates article recommendations from a user's liked titles.
// A single call processes liked articles strictly sequentially; the service
// itself holds no per-request state and is safe for concurrent use.
type Service struct {
	fetcher Searcher
	topK    int
	pace    time.Duration
	sleep   func(time.Duration) // swappable for tests
}

// NewService creates a recommendation service on top of a candidate fetcher.
// Non-positive topK or pace fall back to the defaults.
func NewService(fetcher Searcher, topK int, pace time.Duration) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if pace <= 0 {
		pace = defaultPace
	}
	return &Service{
		fetcher: fetcher,
		topK:    topK,
		pace:    pace,
		sleep:   time.Sleep,
	}
}

// GetRecommendations returns ranked recommendations for the given liked
// articles, at most topK per entry, in input order. Entries with empty
// titles are skipped, upstream failures degrade to fewer results, and an
// unexpected failure mid-loop yields whatever was accumulated before it.
// GetRecommendations never panics and never returns an error.
func (s *Service) GetRecommendations(likedArticles []LikedArticle) (recommendations []Article) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recommendation error: %v (returning %d partial results)", r, len(recommendations))
		}
	}()

	if len(likedArticles) == 0 {
		return nil
	}

	log.Printf("Generating recommendations for %d liked articles", len(likedArticles))

	for i, liked := range likedArticles {
		if liked.Title == "" {
			log.Printf("Skipping liked article %d: empty title", i)
			continue
		}

		raw := s.fetcher.Search(liked.Title)
		if len(raw) == 0 {
			continue
		}

		candidates := make([]Article, len(raw))
		for j, r := range raw {
			candidates[j] = projectArticle(r)
		}

		recommendations = append(recommendations, rankBySimilarity(liked.Title, candidates, s.topK)...)

		// Courtesy pacing toward the upstream API; none after the last entry.
		if i < len(likedArticles)-1 {
			s.sleep(s.pace)
		}
	}

	return recommendations
}
