package database

// User is a registered account. No credentials are stored; authentication
// lives outside this service.
type User struct {
	ID        int64
	Email     string
	Username  string
	Phone     *string
	CreatedAt *string
}

// LikedArticle is a title a user has marked as of interest. Only the title
// and category serialize; row bookkeeping stays internal.
type LikedArticle struct {
	ID       int64   `json:"-"`
	UserID   int64   `json:"-"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	LikedAt  *string `json:"-"`
}

// Headline is an article collected from a configured RSS feed.
type Headline struct {
	ID             int64
	URL            string
	Title          string
	Source         *string
	PublishedDate  *string
	Content        *string
	ContentFetched bool
	CollectedAt    *string
}

// Stats aggregates store-wide counts for the status command.
type Stats struct {
	Users          int
	LikedArticles  int
	Headlines      int
	FetchedContent int
}
