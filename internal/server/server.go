// Package server exposes the JSON API: recommendations, registration, and
// liked-article bookkeeping.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/rs/cors"

	"newsrec/internal/database"
	"newsrec/internal/recommend"
)

// defaultMaxLiked caps how many of the newest liked articles feed one
// recommendation request.
const defaultMaxLiked = 10

// Recommender generates recommendations from liked articles.
// *recommend.Service implements it.
type Recommender interface {
	GetRecommendations(likedArticles []recommend.LikedArticle) []recommend.Article
}

// Server is the HTTP server for the newsrec API.
type Server struct {
	db          *database.DB
	recommender Recommender
	maxLiked    int
	handler     http.Handler
}

// New creates a new Server. Non-positive maxLiked falls back to the default.
func New(db *database.DB, recommender Recommender, maxLiked int) *Server {
	if maxLiked <= 0 {
		maxLiked = defaultMaxLiked
	}
	s := &Server{db: db, recommender: recommender, maxLiked: maxLiked}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /recommend", s.handleRecommend)
	mux.HandleFunc("POST /recommendForUser", s.handleRecommendForUser)
	mux.HandleFunc("POST /registration", s.handleRegistration)
	mux.HandleFunc("POST /likeArticle", s.handleLikeArticle)
	mux.HandleFunc("POST /unlikeArticle", s.handleUnlikeArticle)
	mux.HandleFunc("POST /getLikedArticles", s.handleGetLikedArticles)
	mux.HandleFunc("POST /getUserDetails", s.handleGetUserDetails)
	mux.HandleFunc("GET /headlines", s.handleHeadlines)

	// The original frontend is served from another origin; allow everything.
	s.handler = cors.AllowAll().Handler(mux)
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LikedArticles []recommend.LikedArticle `json:"liked_articles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid article format")
		return
	}
	if len(req.LikedArticles) == 0 {
		writeError(w, http.StatusBadRequest, "No liked articles provided")
		return
	}
	for _, liked := range req.LikedArticles {
		if liked.Title == "" {
			writeError(w, http.StatusBadRequest, "Articles must contain a 'title' string field")
			return
		}
	}

	recent := newestFirst(req.LikedArticles, s.maxLiked)
	log.Printf("Recommendation request: %d liked articles, using newest %d", len(req.LikedArticles), len(recent))

	writeJSON(w, http.StatusOK, nonNil(s.recommender.GetRecommendations(recent)))
}

func (s *Server) handleRecommendForUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	liked, err := s.db.GetLikedArticles(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	seeds := make([]recommend.LikedArticle, len(liked))
	for i, la := range liked {
		seeds[i] = recommend.LikedArticle{Title: la.Title, Category: la.Category}
	}
	recent := newestFirst(seeds, s.maxLiked)

	writeJSON(w, http.StatusOK, nonNil(s.recommender.GetRecommendations(recent)))
}

func (s *Server) handleRegistration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Username == "" {
		writeError(w, http.StatusBadRequest, "Email and username are required")
		return
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}
	if _, err := s.db.CreateUser(req.Email, req.Username, phone); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "Email or username already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": true, "message": "User registered successfully"})
}

func (s *Server) handleLikeArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		ArticleTitle    string `json:"articleTitle"`
		ArticleCategory string `json:"articleCategory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.ArticleTitle == "" {
		writeError(w, http.StatusBadRequest, "Email and articleTitle are required")
		return
	}

	if err := s.db.LikeArticle(req.Email, req.ArticleTitle, req.ArticleCategory); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": true, "message": "Article liked successfully"})
}

func (s *Server) handleUnlikeArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string `json:"email"`
		ArticleTitle string `json:"articleTitle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.ArticleTitle == "" {
		writeError(w, http.StatusBadRequest, "Email and articleTitle are required")
		return
	}

	if err := s.db.UnlikeArticle(req.Email, req.ArticleTitle); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": true, "message": "Article unliked successfully"})
}

func (s *Server) handleGetLikedArticles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	liked, err := s.db.GetLikedArticles(req.Email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if liked == nil {
		// Unknown users get an empty list, not an error.
		liked = []database.LikedArticle{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": true,
		"data":   map[string]any{"likedArticles": liked},
	})
}

func (s *Server) handleGetUserDetails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := s.db.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	details := map[string]any{"email": user.Email, "username": user.Username}
	if user.Phone != nil {
		details["phone"] = *user.Phone
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	headlines, err := s.db.GetRecentHeadlines(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	type headlineJSON struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Source        string `json:"source"`
		PublishedDate string `json:"publishedDate"`
	}
	out := make([]headlineJSON, len(headlines))
	for i, h := range headlines {
		out[i] = headlineJSON{Title: h.Title, URL: h.URL}
		if h.Source != nil {
			out[i].Source = *h.Source
		}
		if h.PublishedDate != nil {
			out[i].PublishedDate = *h.PublishedDate
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": true,
		"data":   map[string]any{"headlines": out},
	})
}

// newestFirst reverses caller-ordered liked articles (oldest first) and
// keeps at most limit of the newest.
func newestFirst(liked []recommend.LikedArticle, limit int) []recommend.LikedArticle {
	out := make([]recommend.LikedArticle, 0, len(liked))
	for i := len(liked) - 1; i >= 0; i-- {
		out = append(out, liked[i])
		if len(out) == limit {
			break
		}
	}
	return out
}

// nonNil keeps empty recommendation lists serializing as [] rather than null.
func nonNil(articles []recommend.Article) []recommend.Article {
	if articles == nil {
		return []recommend.Article{}
	}
	return articles
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"status": false, "error": msg})
}
