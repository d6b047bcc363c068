package collect

import (
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const maxPerFeed = 25

// Entry is a headline parsed from an RSS/Atom feed.
type Entry struct {
	URL           string
	Title         string
	PublishedDate string // YYYY-MM-DD or empty
	Summary       string
	Source        string
}

// Feed identifies a single configured feed.
type Feed struct {
	URL  string
	Name string
}

// Parser parses configured RSS/Atom feeds into headline entries.
type Parser struct {
	feeds  []Feed
	parser *gofeed.Parser
}

// NewParser creates a Parser over the configured feeds.
func NewParser(feeds []Feed) *Parser {
	return &Parser{feeds: feeds, parser: gofeed.NewParser()}
}

// ParseAll parses every configured feed and returns entries published within
// the last daysBack days. Failing feeds are logged and skipped.
func (p *Parser) ParseAll(daysBack int) []Entry {
	cutoff := time.Now().AddDate(0, 0, -daysBack)

	var all []Entry
	for _, f := range p.feeds {
		name := f.Name
		if name == "" {
			name = sourceNameFromURL(f.URL)
		}

		feed, err := p.parser.ParseURL(f.URL)
		if err != nil {
			log.Printf("Failed to parse feed %s: %v", f.URL, err)
			continue
		}

		count := 0
		for _, item := range feed.Items {
			if count >= maxPerFeed {
				break
			}
			entry, ok := entryFromItem(item, name)
			if !ok || !publishedAfter(entry.PublishedDate, cutoff) {
				continue
			}
			all = append(all, entry)
			count++
		}
		log.Printf("Parsed %d entries from %s (within %d days)", count, name, daysBack)
	}

	return all
}

func entryFromItem(item *gofeed.Item, source string) (Entry, bool) {
	link := item.Link
	if link == "" {
		link = item.GUID
	}
	title := strings.TrimSpace(item.Title)
	if link == "" || title == "" {
		return Entry{}, false
	}

	var publishedDate string
	if item.PublishedParsed != nil {
		publishedDate = item.PublishedParsed.Format("2006-01-02")
	} else if item.UpdatedParsed != nil {
		publishedDate = item.UpdatedParsed.Format("2006-01-02")
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	return Entry{
		URL:           link,
		Title:         title,
		PublishedDate: publishedDate,
		Summary:       stripHTML(summary),
		Source:        source,
	}, true
}

// publishedAfter treats undated and unparseable entries as recent.
func publishedAfter(publishedDate string, cutoff time.Time) bool {
	if publishedDate == "" {
		return true
	}
	pub, err := time.Parse("2006-01-02", publishedDate)
	if err != nil {
		return true
	}
	return !pub.Before(cutoff)
}

// stripHTML removes tags, decodes the common entities, and collapses
// whitespace. Feed summaries routinely arrive as HTML fragments.
func stripHTML(text string) string {
	var b strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	s := b.String()
	for entity, repl := range map[string]string{
		"&nbsp;": " ", "&amp;": "&", "&lt;": "<",
		"&gt;": ">", "&quot;": `"`, "&#39;": "'",
	} {
		s = strings.ReplaceAll(s, entity, repl)
	}

	return strings.Join(strings.Fields(s), " ")
}

// sourceNameFromURL derives a display name from a feed URL's host.
func sourceNameFromURL(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil {
		return feedURL
	}
	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "blog.", "blogs.", "rss.", "feeds."} {
		host = strings.TrimPrefix(host, prefix)
	}

	parts := strings.Split(host, ".")
	name := host
	if len(parts) >= 2 {
		name = parts[len(parts)-2]
	}
	if name == "" {
		return feedURL
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
