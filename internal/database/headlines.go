package database

import "database/sql"

// InsertHeadline inserts a collected headline. Returns the ID on success,
// 0 if the URL was already collected.
func (db *DB) InsertHeadline(url, title string, source, publishedDate, content *string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO headlines (url, title, source, published_date, content)
		VALUES (?, ?, ?, ?, ?)`,
		url, title, source, publishedDate, content,
	)
	if err != nil {
		// Duplicate URL constraint
		return 0, nil //nolint: nilerr
	}
	return result.LastInsertId()
}

// GetRecentHeadlines returns the most recently collected headlines.
func (db *DB) GetRecentHeadlines(limit int) ([]Headline, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(
		`SELECT id, url, title, source, published_date, content, content_fetched, collected_at
		FROM headlines ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHeadlines(rows)
}

// GetHeadlinesNeedingFetch returns headlines with empty content that haven't
// had a fetch attempt yet.
func (db *DB) GetHeadlinesNeedingFetch() ([]Headline, error) {
	rows, err := db.conn.Query(
		`SELECT id, url, title, source, published_date, content, content_fetched, collected_at
		FROM headlines
		WHERE (content IS NULL OR content = '') AND content_fetched = 0
		ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHeadlines(rows)
}

// UpdateHeadlineContent stores extracted content after fetching.
func (db *DB) UpdateHeadlineContent(headlineID int64, content *string) error {
	_, err := db.conn.Exec(
		"UPDATE headlines SET content = ?, content_fetched = 1 WHERE id = ?",
		content, headlineID,
	)
	return err
}

// MarkHeadlineFetchAttempted records a failed fetch so it is not retried.
func (db *DB) MarkHeadlineFetchAttempted(headlineID int64) error {
	_, err := db.conn.Exec(
		"UPDATE headlines SET content_fetched = 1 WHERE id = ?", headlineID,
	)
	return err
}

func scanHeadlines(rows *sql.Rows) ([]Headline, error) {
	var headlines []Headline
	for rows.Next() {
		var h Headline
		if err := rows.Scan(&h.ID, &h.URL, &h.Title, &h.Source, &h.PublishedDate,
			&h.Content, &h.ContentFetched, &h.CollectedAt); err != nil {
			return nil, err
		}
		headlines = append(headlines, h)
	}
	return headlines, rows.Err()
}
