package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"newsrec/internal/collect"
	"newsrec/internal/config"
	"newsrec/internal/database"
	"newsrec/internal/fetch"
	"newsrec/internal/news"
	"newsrec/internal/recommend"
	"newsrec/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "newsrec",
	Short:   "Content-based news recommendations",
	Long:    "newsrec recommends news articles by matching a user's liked titles against fresh NewsAPI results.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Optional .env for NEWSAPI_KEY, matching local dev setups.
		godotenv.Load()

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	collectCmd.Flags().IntVar(&daysBack, "days", 1, "Collect entries published within this many days")
	collectCmd.Flags().BoolVar(&fetchContent, "fetch-content", false, "Also fetch full article content")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("newsrec", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/newsrec/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds and set NEWSAPI_KEY in the environment.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Println("Store:")
		fmt.Printf("  Users: %d\n", stats.Users)
		fmt.Printf("  Liked articles: %d\n", stats.LikedArticles)
		fmt.Printf("  Headlines collected: %d\n", stats.Headlines)
		fmt.Printf("  Headlines with content: %d\n", stats.FetchedContent)

		fmt.Println("\nNewsAPI:")
		if cfg.APIKey() != "" {
			fmt.Println("  API key: configured")
		} else {
			fmt.Printf("  API key: missing (set %s)\n", cfg.NewsAPI.APIKeyEnv)
		}
		return nil
	},
}

// --- collect command ---

var (
	daysBack     int
	fetchContent bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect headlines from configured RSS feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		feeds := make([]collect.Feed, len(cfg.Sources.Feeds))
		for i, f := range cfg.Sources.Feeds {
			feeds[i] = collect.Feed{URL: f.URL, Name: f.Name}
		}
		if len(feeds) == 0 {
			return fmt.Errorf("no feeds configured; add sources.feeds to the config")
		}

		fmt.Println("Collecting headlines from feeds...")
		result := collect.NewCollector(db, feeds, daysBack).Collect()

		fmt.Println("\nCollection complete:")
		fmt.Printf("  Total found: %d\n", result.TotalFound)
		fmt.Printf("  New headlines: %d\n", result.NewHeadlines)
		fmt.Printf("  Duplicates skipped: %d\n", result.Duplicates)

		if len(result.Sources) > 0 {
			fmt.Println("\nHeadlines by source:")
			type kv struct {
				key string
				val int
			}
			var sorted []kv
			for k, v := range result.Sources {
				sorted = append(sorted, kv{k, v})
			}
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].val > sorted[j].val })
			for _, s := range sorted {
				fmt.Printf("  %s: %d\n", s.key, s.val)
			}
		}

		if fetchContent {
			fmt.Println("\nFetching article content...")
			fr := fetch.NewContentFetcher(db, 15*time.Second).FetchMissingContent()
			fmt.Printf("  Fetched: %d, failed: %d\n", fr.Fetched, fr.Failed)
		}
		return nil
	},
}

// --- recommend command ---

var recommendCmd = &cobra.Command{
	Use:   "recommend [liked title]...",
	Short: "Print recommendations for one or more liked article titles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newRecommendService()

		liked := make([]recommend.LikedArticle, len(args))
		for i, title := range args {
			liked[i] = recommend.LikedArticle{Title: title}
		}

		recs := svc.GetRecommendations(liked)
		if len(recs) == 0 {
			fmt.Println("No recommendations found.")
			return nil
		}

		for _, r := range recs {
			fmt.Printf("- %s (%s)\n  %s\n", r.Title, r.Source.Name, r.URL)
		}
		return nil
	},
}

// --- serve command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		srv := server.New(db, newRecommendService(), cfg.Recommend.MaxLiked)

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		fmt.Printf("Serving on http://localhost%s\n", addr)
		return http.ListenAndServe(addr, srv.Handler())
	},
}

func newRecommendService() *recommend.Service {
	client := news.NewClient(news.Config{
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.NewsAPI.BaseURL,
		Language: cfg.NewsAPI.Language,
		PageSize: cfg.NewsAPI.PageSize,
		Sort:     cfg.NewsAPI.Sort,
	})
	if !client.IsConfigured() {
		log.Printf("warning: %s not set, recommendations will be empty", cfg.NewsAPI.APIKeyEnv)
	}
	return recommend.NewService(client, cfg.Recommend.TopK, time.Duration(cfg.Recommend.PaceMs)*time.Millisecond)
}

func openDB() (*database.DB, error) {
	dbPath := filepath.Join(cfg.GetDataDir(), "newsrec.db")
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}
