package recommend

import "newsrec/internal/news"

// LikedArticle is a title a user has marked as of interest. It seeds one
// round of candidate search. Category defaults to "general".
type LikedArticle struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Source identifies the publisher of an article.
type Source struct {
	Name string `json:"name"`
}

// Article is the canonical article shape returned to callers. The processed
// text used for scoring is unexported and never serializes.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	Source      Source `json:"source"`
	PublishedAt string `json:"publishedAt"`

	processedText string
}

// projectArticle maps a raw NewsAPI record into the canonical shape,
// defaulting every missing field.
func projectArticle(raw news.RawArticle) Article {
	a := Article{
		Title:       raw.Title,
		Description: raw.Description,
		URL:         raw.URL,
		URLToImage:  raw.URLToImage,
		Source:      Source{Name: raw.Source.Name},
		PublishedAt: raw.PublishedAt,
	}
	if a.Title == "" {
		a.Title = "No Title"
	}
	if a.URL == "" {
		a.URL = "#"
	}
	if a.Source.Name == "" {
		a.Source.Name = "Unknown"
	}
	return a
}
