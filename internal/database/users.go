package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint is violated.
var ErrDuplicate = errors.New("already exists")

// CreateUser registers a user. Email and username must be unique; duplicates
// return ErrDuplicate.
func (db *DB) CreateUser(email, username string, phone *string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO users (email, username, phone) VALUES (?, ?, ?)",
		email, username, phone,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("creating user: %w", err)
	}
	return result.LastInsertId()
}

// GetUserByEmail returns the user with the given email, or ErrNotFound.
func (db *DB) GetUserByEmail(email string) (*User, error) {
	row := db.conn.QueryRow(
		"SELECT id, email, username, phone, created_at FROM users WHERE email = ?", email,
	)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Phone, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername returns the user with the given username, or ErrNotFound.
func (db *DB) GetUserByUsername(username string) (*User, error) {
	row := db.conn.QueryRow(
		"SELECT id, email, username, phone, created_at FROM users WHERE username = ?", username,
	)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Phone, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// LikeArticle appends a liked article for the user identified by email.
func (db *DB) LikeArticle(email, title, category string) error {
	user, err := db.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if category == "" {
		category = "general"
	}
	_, err = db.conn.Exec(
		"INSERT INTO liked_articles (user_id, title, category) VALUES (?, ?, ?)",
		user.ID, title, category,
	)
	return err
}

// UnlikeArticle removes every liked article matching the title for the user.
func (db *DB) UnlikeArticle(email, title string) error {
	user, err := db.GetUserByEmail(email)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		"DELETE FROM liked_articles WHERE user_id = ? AND title = ?",
		user.ID, title,
	)
	return err
}

// GetLikedArticles returns a user's liked articles in like order, oldest
// first.
func (db *DB) GetLikedArticles(email string) ([]LikedArticle, error) {
	user, err := db.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	rows, err := db.conn.Query(
		"SELECT id, user_id, title, category, liked_at FROM liked_articles WHERE user_id = ? ORDER BY id",
		user.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var liked []LikedArticle
	for rows.Next() {
		var la LikedArticle
		if err := rows.Scan(&la.ID, &la.UserID, &la.Title, &la.Category, &la.LikedAt); err != nil {
			return nil, err
		}
		liked = append(liked, la)
	}
	return liked, rows.Err()
}
