// Package collect gathers headlines from configured RSS feeds into the
// local store.
package collect

import (
	"log"

	"newsrec/internal/database"
)

// Result holds the results of a collection run.
type Result struct {
	TotalFound   int
	NewHeadlines int
	Duplicates   int
	Sources      map[string]int
}

// Collector drives headline collection from configured feeds.
type Collector struct {
	db       *database.DB
	parser   *Parser
	daysBack int
}

// NewCollector creates a headline collector.
func NewCollector(db *database.DB, feeds []Feed, daysBack int) *Collector {
	return &Collector{
		db:       db,
		parser:   NewParser(feeds),
		daysBack: daysBack,
	}
}

// Collect parses all feeds and inserts new headlines, deduplicating by URL.
func (c *Collector) Collect() *Result {
	r := &Result{Sources: make(map[string]int)}

	entries := c.parser.ParseAll(c.daysBack)
	r.TotalFound = len(entries)

	for _, entry := range entries {
		var source, pubDate, summary *string
		if entry.Source != "" {
			source = &entry.Source
		}
		if entry.PublishedDate != "" {
			pubDate = &entry.PublishedDate
		}
		if entry.Summary != "" {
			summary = &entry.Summary
		}

		id, _ := c.db.InsertHeadline(entry.URL, entry.Title, source, pubDate, summary)
		if id > 0 {
			r.NewHeadlines++
			r.Sources[entry.Source]++
		} else {
			r.Duplicates++
		}
	}

	log.Printf("Collection complete: %d found, %d new, %d duplicates", r.TotalFound, r.NewHeadlines, r.Duplicates)
	return r
}
