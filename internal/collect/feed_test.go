package collect

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestStripHTML(t *testing.T) {
	got := stripHTML("<p>Hello &amp; welcome to <b>newsrec</b></p>")
	if got != "Hello & welcome to newsrec" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestSourceNameFromURL(t *testing.T) {
	cases := map[string]string{
		"https://feeds.example.com/rss.xml": "Example",
		"https://www.theverge.com/rss":      "Theverge",
	}
	for in, want := range cases {
		if got := sourceNameFromURL(in); got != want {
			t.Errorf("sourceNameFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEntryFromItemSkipsUntitled(t *testing.T) {
	if _, ok := entryFromItem(&gofeed.Item{Link: "https://example.com"}, "Src"); ok {
		t.Error("expected untitled item to be skipped")
	}
	if _, ok := entryFromItem(&gofeed.Item{Title: "No link"}, "Src"); ok {
		t.Error("expected linkless item to be skipped")
	}
}

func TestPublishedAfter(t *testing.T) {
	cutoff := time.Now().AddDate(0, 0, -2)
	if publishedAfter(time.Now().AddDate(0, 0, -7).Format("2006-01-02"), cutoff) {
		t.Error("expected week-old entry to be outside the window")
	}
	if !publishedAfter("", cutoff) {
		t.Error("expected undated entry to pass")
	}
}
