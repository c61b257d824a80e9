package main

// @title           Site Q&A API
// @version         1.0
// @description     Question answering API over crawled website content using retrieval augmented generation.

// @BasePath  /

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	_ "github.com/custodia-labs/siteqa/docs"
	"github.com/custodia-labs/siteqa/internal/adapters/driven/ai"
	"github.com/custodia-labs/siteqa/internal/adapters/driven/fscache"
	"github.com/custodia-labs/siteqa/internal/adapters/driven/memory"
	"github.com/custodia-labs/siteqa/internal/adapters/driven/pgvector"
	redisadapter "github.com/custodia-labs/siteqa/internal/adapters/driven/redis"
	"github.com/custodia-labs/siteqa/internal/adapters/driving/http"
	"github.com/custodia-labs/siteqa/internal/config"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
	"github.com/custodia-labs/siteqa/internal/core/ports/driving"
	"github.com/custodia-labs/siteqa/internal/core/services"
	"github.com/custodia-labs/siteqa/internal/crawler"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	ingestURL      string
	ingestMaxPages int
	ingestDelay    float64
	ingestForce    bool

	askTopK int
	askJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "siteqa",
	Short: "Crawl a website and answer questions about its content",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Crawl a website and build the knowledge base",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		opts := a.cfg.IngestOptions()
		opts.UsePageCache = true
		opts.ForceRecrawl = ingestForce
		if ingestURL != "" {
			opts.BaseURL = ingestURL
		}
		if cmd.Flags().Changed("max-pages") {
			opts.MaxPages = ingestMaxPages
		}
		if cmd.Flags().Changed("delay") {
			opts.CrawlDelay = time.Duration(ingestDelay * float64(time.Second))
		}

		fmt.Printf("Building knowledge base from %s\n", opts.BaseURL)
		result, err := a.ingest.Ingest(ctx, opts)
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}

		fmt.Printf("\nDone in %s\n", result.Took.Round(time.Millisecond))
		fmt.Printf("  Pages:      %d crawled, %d skipped\n", result.PagesCrawled, result.PagesSkipped)
		fmt.Printf("  Chunks:     %d\n", result.ChunksCreated)
		fmt.Printf("  Embeddings: %d\n", result.EmbeddingsStored)
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question against the knowledge base",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		answer, err := a.answer.Ask(ctx, strings.Join(args, " "), askTopK)
		if err != nil {
			return err
		}

		if askJSON {
			out, err := json.MarshalIndent(answer, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Println(answer.Text)
		if len(answer.Sources) > 0 {
			fmt.Println("\nSources:")
			for i, src := range answer.Sources {
				fmt.Printf("  %d. %s (%.3f)\n     %s\n", i+1, src.Title, src.Relevance, src.URL)
			}
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "site to crawl (default TARGET_URL from the environment)")
	ingestCmd.Flags().IntVar(&ingestMaxPages, "max-pages", 50, "maximum pages to crawl (1-100)")
	ingestCmd.Flags().Float64Var(&ingestDelay, "delay", 1.0, "seconds to wait between page fetches (0.5-5.0)")
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "recrawl even when a cached copy of the site exists")

	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "context chunks to retrieve (default TOP_K_RESULTS from the environment)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full answer as JSON")

	rootCmd.AddCommand(serveCmd, ingestCmd, askCmd)
}

func runServe() error {
	a, err := buildApp(context.Background())
	if err != nil {
		return err
	}
	defer a.close()

	server := http.NewServer(http.Config{
		Host:    a.cfg.Host,
		Port:    a.cfg.Port,
		Version: version,
	}, a.ingest, a.answer, slog.Default())

	log.Printf("Site Q&A API %s starting on %s", version, a.cfg.Addr())
	return server.Start()
}

// app bundles the wired core services with the cleanup for whatever
// connections were opened while building them.
type app struct {
	cfg    *config.Config
	ingest driving.IngestService
	answer driving.AnswerService
	close  func()
}

// buildApp loads configuration and wires the adapters every command shares.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Logs go to stderr so command output on stdout stays clean.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var cleanups []func()
	closeAll := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// ===== Initialize OpenAI services =====
	embedder, llm, err := ai.NewServices(ai.Config{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		EmbeddingModel: cfg.EmbeddingModel,
		LLMModel:       cfg.LLMModel,
		Temperature:    cfg.LLMTemperature,
		MaxTokens:      cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	cleanups = append(cleanups, func() { _ = embedder.Close() }, func() { _ = llm.Close() })

	// ===== Initialize vector index =====
	var index driven.VectorIndex
	switch cfg.VectorBackend {
	case config.BackendPgvector:
		log.Println("Connecting to PostgreSQL...")
		db, err := pgvector.Connect(ctx, pgvector.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		cleanups = append(cleanups, func() { _ = db.Close() })

		idx, err := pgvector.NewIndex(db, cfg.Collection, embedder.Dimensions())
		if err != nil {
			closeAll()
			return nil, err
		}
		if err := idx.InitSchema(ctx); err != nil {
			closeAll()
			return nil, fmt.Errorf("init schema: %w", err)
		}
		log.Println("PostgreSQL connected")
		index = idx

	case config.BackendMemory:
		log.Println("Using in-memory vector index (contents are lost on exit)")
		index = memory.NewIndex()

	default:
		closeAll()
		return nil, fmt.Errorf("unknown VECTOR_BACKEND %q", cfg.VectorBackend)
	}

	// ===== Initialize page cache =====
	var pageCache driven.PageCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			closeAll()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		cleanups = append(cleanups, func() { _ = client.Close() })
		pageCache = redisadapter.NewPageCache(client, redisadapter.DefaultTTL)
		log.Println("Using Redis page cache")
	} else {
		fs, err := fscache.NewPageCache(cfg.PageCacheDir)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("open page cache: %w", err)
		}
		pageCache = fs
		log.Printf("Using filesystem page cache in %s/", cfg.PageCacheDir)
	}

	// ===== Core services =====
	ingestService, err := services.NewIngestOrchestrator(services.IngestOrchestratorConfig{
		PageSources:  crawler.NewFactory(logger),
		PageCache:    pageCache,
		Embedder:     embedder,
		Index:        index,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		Collection:   cfg.Collection,
		LLMModel:     cfg.LLMModel,
		Logger:       logger,
	})
	if err != nil {
		closeAll()
		return nil, err
	}

	answerService := services.NewAnswerService(embedder, index, llm, cfg.TopK, logger)

	return &app{
		cfg:    cfg,
		ingest: ingestService,
		answer: answerService,
		close:  closeAll,
	}, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so a
// long-running crawl can stop cleanly mid-run.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received...")
		cancel()
	}()

	return ctx, cancel
}
