package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/krishnendude2005/vibe-cart-demo/internal/cache"
	"github.com/krishnendude2005/vibe-cart-demo/internal/catalog"
	sthttp "github.com/krishnendude2005/vibe-cart-demo/internal/http"
	"github.com/krishnendude2005/vibe-cart-demo/internal/notify"
	"github.com/krishnendude2005/vibe-cart-demo/internal/receipt"
	"github.com/krishnendude2005/vibe-cart-demo/internal/store"
)

type Config struct {
	HTTPPort        string
	StoreBackend    string // "postgres" or "memory"
	PostgresHost    string
	PostgresPort    int
	PostgresUser    string
	PostgresPass    string
	PostgresDB      string
	RedisAddr       string // empty disables the catalog cache
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	// .env.local keeps local overrides out of the environment.
	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env.local: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StoreBackend:    getEnv("STORE_BACKEND", "postgres"),
		PostgresHost:    getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:    getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:    getEnv("POSTGRES_USER", "storefront"),
		PostgresPass:    getEnv("POSTGRES_PASSWORD", "storefront"),
		PostgresDB:      getEnv("POSTGRES_DB", "storefront"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("warning: env %s is not a number, using default %d", key, defaultValue)
	}
	return defaultValue
}

func credentials(cfg *Config) *store.Credentials {
	return &store.Credentials{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
	}
}

func main() {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront demo: catalog, session cart, mock checkout, receipt",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(loadConfig())
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(loadConfig())
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(loadConfig())
		},
	}

	root.AddCommand(serveCmd, migrateCmd, seedCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cfg *Config) error {
	log.Println("storefront starting")

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var productCache cache.ProductCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		productCache = cache.NewRedisCache(client)
		log.Printf("catalog cache enabled at %s", cfg.RedisAddr)
	}

	cat := catalog.NewService(st, productCache)
	handoff := receipt.NewHandoff()
	router := sthttp.NewRouter(st, cat, handoff, notify.LogNotifier{}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// openStore picks the backend. The memory backend seeds itself so the demo
// works without any infrastructure.
func openStore(cfg *Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		mem := store.NewMemoryStore()
		if err := mem.SeedProducts(context.Background(), store.DemoProducts); err != nil {
			return nil, nil, err
		}
		log.Println("using in-memory store with demo catalog")
		return mem, func() {}, nil
	case "postgres":
		pg, err := store.NewPostgresStore(credentials(cfg))
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { pg.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func runMigrate(cfg *Config) error {
	pg, err := store.NewPostgresStore(credentials(cfg))
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.RunMigrations(); err != nil {
		return err
	}
	log.Println("migrations completed successfully")
	return nil
}

func runSeed(cfg *Config) error {
	pg, err := store.NewPostgresStore(credentials(cfg))
	if err != nil {
		return err
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pg.SeedProducts(ctx, store.DemoProducts); err != nil {
		return err
	}
	log.Printf("seeded %d products", len(store.DemoProducts))
	return nil
}
